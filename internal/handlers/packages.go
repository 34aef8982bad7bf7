package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Packages are the monthly pricing tiers, priced in EGP.
var Packages = []Package{
	{
		Name:  "باقة التواجد الافتراضي",
		Price: 3000,
		Features: []string{
			"8 منشورات شهريًا",
			"4 تصاميم جرافيك",
			"إدارة صفحة واحدة",
			"50% من قيمة الباقة إعلانات ممولة",
			"تقرير شهري أساسي",
		},
	},
	{
		Name:  "باقة الحضور اللامع",
		Price: 6000,
		Features: []string{
			"15 منشور شهريًا",
			"10 تصاميم جرافيك احترافية",
			"2 فيديو ريلز",
			"إدارة صفحتين",
			"50% من قيمة الباقة إعلانات ممولة",
			"تحليل أداء متقدم",
		},
		IsFeatured: true,
	},
	{
		Name:  "باقة الانتشار الفيروسي",
		Price: 10000,
		Features: []string{
			"25 منشور شهريًا",
			"20 تصميم إبداعي",
			"5 فيديوهات ريلز",
			"إدارة 3 صفحات",
			"50% من قيمة الباقة إعلانات ممولة",
			"استراتيجية نمو مخصصة ومتابعة",
		},
	},
}

// FindPackage looks a tier up by name.
func FindPackage(name string) (Package, bool) {
	for _, p := range Packages {
		if p.Name == name {
			return p, true
		}
	}
	return Package{}, false
}

// HandleListPackages returns the static pricing tiers.
func HandleListPackages(c echo.Context) error {
	return c.JSON(http.StatusOK, Packages)
}

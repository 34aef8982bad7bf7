package imagegen

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func imageResponse(t *testing.T, data []byte, mime string) string {
	t.Helper()
	resp := geminiResponse{
		Candidates: []candidate{{
			Content: contentResponse{
				Parts: []partResponse{
					{Text: "here is your image"},
					{InlineData: &inlineDataResp{MimeType: mime, Data: base64.StdEncoding.EncodeToString(data)}},
				},
			},
		}},
	}
	b, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(b)
}

func TestSynthesize(t *testing.T) {
	want := []byte{0x89, 0x50, 0x4e, 0x47}

	var gotPath, gotKey string
	var gotReq geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(imageResponse(t, want, "image/png")))
	}))
	defer srv.Close()

	c := NewClient("test-key", "image-model", "edit-model").WithBaseURL(srv.URL)
	img, err := c.Synthesize(context.Background(), "a barista pouring latte art")
	require.NoError(t, err)

	assert.Equal(t, want, img.Bytes)
	assert.Equal(t, "image/png", img.MimeType)
	assert.Equal(t, "/models/image-model:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)

	require.Len(t, gotReq.Contents, 1)
	require.NotEmpty(t, gotReq.Contents[0].Parts)
	prompt := gotReq.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "a barista pouring latte art")
	assert.Contains(t, prompt, "Do not include any text")
	require.NotNil(t, gotReq.GenerationConfig)
	require.NotNil(t, gotReq.GenerationConfig.ImageConfig)
	assert.Equal(t, "1:1", gotReq.GenerationConfig.ImageConfig.AspectRatio)
}

func TestSynthesizeNoImagePart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"sorry, text only"}]}}]}`))
	}))
	defer srv.Close()

	c := NewClient("k", "m", "e").WithBaseURL(srv.URL)
	_, err := c.Synthesize(context.Background(), "anything")
	var serr *SynthesisError
	require.ErrorAs(t, err, &serr)
}

func TestSynthesizeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	c := NewClient("k", "m", "e").WithBaseURL(srv.URL)
	_, err := c.Synthesize(context.Background(), "anything")
	var serr *SynthesisError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, err.Error(), "429")
}

func TestEdit(t *testing.T) {
	edited := []byte{1, 2, 3}

	var gotPath string
	var gotReq geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(imageResponse(t, edited, "image/jpeg")))
	}))
	defer srv.Close()

	c := NewClient("k", "image-model", "edit-model").WithBaseURL(srv.URL)
	base := Image{Bytes: []byte("base"), MimeType: "image/jpeg"}
	logo := Image{Bytes: []byte("logo"), MimeType: "image/png"}

	img, err := c.Edit(context.Background(), base, []Image{logo}, "add the watermark")
	require.NoError(t, err)
	assert.Equal(t, edited, img.Bytes)
	assert.Equal(t, "/models/edit-model:generateContent", gotPath)

	// base inline, logo inline, then the instruction text
	require.Len(t, gotReq.Contents[0].Parts, 3)
	assert.NotNil(t, gotReq.Contents[0].Parts[0].InlineData)
	assert.NotNil(t, gotReq.Contents[0].Parts[1].InlineData)
	assert.Equal(t, "add the watermark", gotReq.Contents[0].Parts[2].Text)
}

func TestEditEmptyBase(t *testing.T) {
	c := NewClient("k", "m", "e")
	_, err := c.Edit(context.Background(), Image{}, nil, "whatever")
	require.Error(t, err)
}

func TestImageDataURL(t *testing.T) {
	img := Image{Bytes: []byte{1, 2}, MimeType: "image/png"}
	assert.Equal(t, "data:image/png;base64,AQI=", img.DataURL())
	assert.True(t, Image{}.Empty())
	assert.False(t, img.Empty())
}

package jobs

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drbusiness/platform/internal/prescription"
)

type countingLLM struct {
	calls atomic.Int32
	err   error
}

func (c *countingLLM) GenerateJSON(ctx context.Context, system, prompt string, schema *genai.Schema) ([]byte, error) {
	return nil, fmt.Errorf("not used")
}

func (c *countingLLM) GenerateText(ctx context.Context, system, prompt string) (string, error) {
	c.calls.Add(1)
	if c.err != nil {
		return "", c.err
	}
	return "## Trends in Egypt", nil
}

func TestTopics_CachesLiveFetch(t *testing.T) {
	llm := &countingLLM{}
	r := NewTrendingTopicsRefresher(prescription.NewGenerator(llm))

	report, err := r.Topics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "## Trends in Egypt", report)
	assert.Equal(t, int32(1), llm.calls.Load())

	// Second call is served from cache.
	report, err = r.Topics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "## Trends in Egypt", report)
	assert.Equal(t, int32(1), llm.calls.Load())
}

func TestTopics_ColdCacheFailure(t *testing.T) {
	llm := &countingLLM{err: fmt.Errorf("model down")}
	r := NewTrendingTopicsRefresher(prescription.NewGenerator(llm))

	_, err := r.Topics(context.Background())
	require.Error(t, err)
}

func TestRefresh_KeepsPreviousReportOnFailure(t *testing.T) {
	llm := &countingLLM{}
	r := NewTrendingTopicsRefresher(prescription.NewGenerator(llm))

	r.refresh(context.Background())
	require.Equal(t, "## Trends in Egypt", r.report)

	llm.err = fmt.Errorf("model down")
	r.refresh(context.Background())
	assert.Equal(t, "## Trends in Egypt", r.report)
}

package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chronicle/internal/modules/narrative/domain"
	"chronicle/internal/modules/narrative/service"
	"chronicle/internal/platform/locale"
)

type mockModel struct {
	mock.Mock
}

func (m *mockModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *mockModel) GenerateImage(ctx context.Context, prompt string) (domain.Image, error) {
	args := m.Called(ctx, prompt)
	return args.Get(0).(domain.Image), args.Error(1)
}

func newService(t *testing.T, model *mockModel) (*service.NarrativeService, *service.Metrics) {
	t.Helper()
	metrics := service.NewMetrics(prometheus.NewRegistry())
	return service.NewNarrativeService(model, 0, metrics, nil), metrics
}

func TestNarrateOK(t *testing.T) {
	t.Parallel()

	model := new(mockModel)
	prompt := domain.NarrativePrompt("notes", domain.Style{}, locale.English)
	model.On("GenerateText", mock.Anything, prompt).Return("  The heroes rode out.  ", nil).Once()
	svc, metrics := newService(t, model)

	out := svc.Narrate(context.Background(), "notes", domain.Style{}, locale.English)
	require.Equal(t, domain.StatusOK, out.Status)
	assert.Equal(t, "The heroes rode out.", out.Value)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Requests.WithLabelValues("narrate", "ok")))
	model.AssertExpectations(t)
}

func TestNarrateFallbacks(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		lang locale.Language
		text string
		err  error
		want string
	}{
		{name: "rate limited", lang: locale.English, err: fmt.Errorf("%w: 429", domain.ErrRateLimited), want: "The scribe could not decipher the events. (API Quota Exceeded)"},
		{name: "network", lang: locale.Russian, err: errors.New("connection reset"), want: "Писец не смог разобрать события."},
		{name: "empty", lang: locale.English, text: "   ", want: "The chronicles are silent on this matter."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			model := new(mockModel)
			model.On("GenerateText", mock.Anything, mock.Anything).Return(tc.text, tc.err).Once()
			svc, metrics := newService(t, model)

			out := svc.Narrate(context.Background(), "notes", domain.Style{}, tc.lang)
			assert.Equal(t, domain.StatusDegraded, out.Status)
			assert.Equal(t, tc.want, out.Value)
			assert.Error(t, out.Cause)
			assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Requests.WithLabelValues("narrate", "degraded")))
		})
	}
}

func TestTranslateFailureReturnsOriginal(t *testing.T) {
	t.Parallel()

	const story = "Once upon a time..."
	model := new(mockModel)
	model.On("GenerateText", mock.Anything, mock.Anything).Return("", errors.New("boom")).Once()
	svc, _ := newService(t, model)

	out := svc.Translate(context.Background(), story, locale.Russian)
	assert.Equal(t, domain.StatusDegraded, out.Status)
	assert.Equal(t, story, out.Value)
}

func TestTranslateEchoDetection(t *testing.T) {
	t.Parallel()

	model := new(mockModel)
	model.On("GenerateText", mock.Anything, mock.Anything).Return("The long road north.", nil).Once()
	model.On("GenerateText", mock.Anything, mock.Anything).Return("Hi", nil).Once()
	model.On("GenerateText", mock.Anything, mock.Anything).Return("Долгая дорога на север.", nil).Once()
	svc, _ := newService(t, model)

	echoed := svc.Translate(context.Background(), "The long road north.", locale.Russian)
	assert.Equal(t, domain.StatusDegraded, echoed.Status)

	short := svc.Translate(context.Background(), "Hi", locale.Russian)
	assert.Equal(t, domain.StatusOK, short.Status, "short text may legitimately translate to itself")

	translated := svc.Translate(context.Background(), "The long road north.", locale.Russian)
	assert.Equal(t, domain.StatusOK, translated.Status)
	assert.Equal(t, "Долгая дорога на север.", translated.Value)
	model.AssertExpectations(t)
}

func TestTranslateEmptyTextSkipsModel(t *testing.T) {
	t.Parallel()

	model := new(mockModel)
	svc, _ := newService(t, model)
	out := svc.Translate(context.Background(), " ", locale.English)
	assert.Equal(t, domain.StatusDegraded, out.Status)
	model.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything)
}

func TestImages(t *testing.T) {
	t.Parallel()

	figure := domain.Figure{Name: "Ysolde", Race: "Elf", Class: "Ranger", Description: "silver hair", BackgroundStory: "exiled"}
	model := new(mockModel)
	model.On("GenerateImage", mock.Anything, mock.Anything).Return(domain.Image{MIMEType: "image/jpeg", Data: []byte{1, 2, 3}}, nil).Once()
	model.On("GenerateImage", mock.Anything, mock.Anything).Return(domain.Image{}, nil).Once()
	model.On("GenerateImage", mock.Anything, mock.Anything).Return(domain.Image{}, domain.ErrRateLimited).Once()
	svc, metrics := newService(t, model)

	portrait := svc.Portrait(context.Background(), figure, domain.Style{}, "")
	require.Equal(t, domain.StatusOK, portrait.Status)
	assert.Equal(t, "data:image/jpeg;base64,AQID", portrait.Value)

	empty := svc.Scene(context.Background(), "a duel", []domain.Figure{figure}, domain.Style{})
	assert.Equal(t, domain.StatusFailed, empty.Status)
	assert.ErrorIs(t, empty.Cause, domain.ErrNoImage)
	assert.Empty(t, empty.Value)

	limited := svc.Storyboard(context.Background(), figure, domain.Style{})
	assert.Equal(t, domain.StatusFailed, limited.Status)
	assert.ErrorIs(t, limited.Cause, domain.ErrRateLimited)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Requests.WithLabelValues("scene", "failed")))
	model.AssertExpectations(t)
}

func TestStoryboardWithoutBackstoryNeverCallsModel(t *testing.T) {
	t.Parallel()

	model := new(mockModel)
	svc, _ := newService(t, model)
	out := svc.Storyboard(context.Background(), domain.Figure{Name: "Brann"}, domain.Style{})
	assert.Equal(t, domain.StatusFailed, out.Status)
	assert.ErrorIs(t, out.Cause, domain.ErrNoBackstory)
	model.AssertNotCalled(t, "GenerateImage", mock.Anything, mock.Anything)
}

func TestTimeoutIsApplied(t *testing.T) {
	t.Parallel()

	model := new(mockModel)
	model.On("GenerateText", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), mock.Anything).Return("fine", nil).Once()
	svc := service.NewNarrativeService(model, 5*time.Second, nil, nil)
	out := svc.Narrate(context.Background(), "n", domain.Style{}, locale.English)
	assert.Equal(t, domain.StatusOK, out.Status)
	model.AssertExpectations(t)
}

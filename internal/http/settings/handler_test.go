package settings

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/lamdn/circura/internal/settings"
)

func newTestRouter(repo settings.Repository) http.Handler {
	h := NewHandler(settings.NewService(repo))

	r := chi.NewRouter()
	r.Route("/settings", func(r chi.Router) {
		h.Routes(r)
	})

	return r
}

func TestHandler_Set(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := settings.NewMockRepository(ctrl)

	repo.EXPECT().SetValue(gomock.Any(), settings.KeyFineRatePercent, "7").Return(nil)

	router := newTestRouter(repo)

	body := bytes.NewBufferString(`{"value":"7"}`)
	req := httptest.NewRequest(http.MethodPut, "/settings/"+settings.KeyFineRatePercent, body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandler_Set_UnknownKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := settings.NewMockRepository(ctrl)

	router := newTestRouter(repo)

	body := bytes.NewBufferString(`{"value":"42"}`)
	req := httptest.NewRequest(http.MethodPut, "/settings/fine_rate_precent", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

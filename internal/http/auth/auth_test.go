package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims Claims, secret string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func TestAuthenticate(t *testing.T) {
	m := NewMiddleware(testSecret)

	var gotClaims *Claims
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	// Tokens carry the card UUID in string form, the way the issuing
	// service writes it.
	cardID := uuid.NewString()

	testCases := []struct {
		name       string
		authHeader string
		wantStatus int
		wantCard   string
	}{
		{
			name: "ValidToken",
			authHeader: "Bearer " + signToken(t, Claims{
				CardID: cardID,
				Role:   RoleReader,
			}, testSecret),
			wantStatus: http.StatusOK,
			wantCard:   cardID,
		},
		{
			name:       "MissingHeader",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "NotBearer",
			authHeader: "Basic abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "WrongSecret",
			authHeader: "Bearer " + signToken(t, Claims{
				CardID: cardID,
			}, "other-secret"),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "ExpiredToken",
			authHeader: "Bearer " + signToken(t, Claims{
				CardID: cardID,
				RegisteredClaims: jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				},
			}, testSecret),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gotClaims = nil

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantCard != "" {
				require.NotNil(t, gotClaims)
				assert.Equal(t, tc.wantCard, gotClaims.CardID)
			}
		})
	}
}

func TestRequireStaff(t *testing.T) {
	m := NewMiddleware(testSecret)

	handler := m.Authenticate(RequireStaff(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	readerToken := signToken(t, Claims{CardID: uuid.NewString(), Role: RoleReader}, testSecret)
	staffToken := signToken(t, Claims{CardID: uuid.NewString(), Role: RoleStaff}, testSecret)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+readerToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+staffToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

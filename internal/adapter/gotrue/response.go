package gotrue

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
	"github.com/heartmarshall/caselookup-backend/internal/gateway"
)

type userResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

func (u userResponse) toDomain() *domain.Identity {
	return &domain.Identity{ID: u.ID, Email: u.Email}
}

type tokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	ExpiresAt    int64        `json:"expires_at"`
	User         userResponse `json:"user"`
}

func (t tokenResponse) toDomain(now time.Time) *domain.AuthSession {
	s := &domain.AuthSession{
		Identity:     *t.User.toDomain(),
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
	}
	switch {
	case t.ExpiresAt > 0:
		s.ExpiresAt = time.Unix(t.ExpiresAt, 0)
	case t.ExpiresIn > 0:
		s.ExpiresAt = now.Add(time.Duration(t.ExpiresIn) * time.Second)
	}
	return s
}

// apiError covers both error shapes the provider has used:
// {"error_code","msg"} and the OAuth style {"error","error_description"}.
type apiError struct {
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func decodeError(status int, body []byte) error {
	re := &gateway.RemoteError{Status: status}
	var ae apiError
	if len(body) > 0 && json.Unmarshal(body, &ae) == nil {
		re.Code = firstNonEmpty(ae.ErrorCode, ae.Error)
		re.Message = firstNonEmpty(ae.Msg, ae.Message, ae.ErrorDescription)
	}
	if re.Message == "" {
		re.Message = strings.TrimSpace(string(body))
	}
	if re.Message == "" {
		re.Message = http.StatusText(status)
	}
	return re
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

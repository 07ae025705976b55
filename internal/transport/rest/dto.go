package rest

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
	"github.com/heartmarshall/caselookup-backend/internal/service/session"
)

const dateLayout = "2006-01-02"

type profileResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	IsActive           bool      `json:"is_active"`
	MustChangePassword bool      `json:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"`
}

type personResponse struct {
	ID         string    `json:"id"`
	FullName   string    `json:"full_name"`
	NationalID *string   `json:"national_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type searchResultResponse struct {
	personResponse
	CaseCount int `json:"case_count"`
}

type caseResponse struct {
	ID          string          `json:"id"`
	PersonID    string          `json:"person_id"`
	CaseType    string          `json:"case_type"`
	CourtName   string          `json:"court_name"`
	CaseNumber  string          `json:"case_number"`
	SessionDate *string         `json:"session_date"`
	Decision    *string         `json:"decision"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Person      *personResponse `json:"person,omitempty"`
}

type personDetailResponse struct {
	personResponse
	Cases []caseResponse `json:"cases"`
}

type searchLogResponse struct {
	ID         string               `json:"id"`
	SearchedAt time.Time            `json:"searched_at"`
	User       *searchLogUserResp   `json:"user"`
	Person     *searchLogPersonResp `json:"person"`
}

type searchLogUserResp struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type searchLogPersonResp struct {
	FullName   string  `json:"full_name"`
	NationalID *string `json:"national_id"`
}

type sessionResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Screen    string           `json:"screen"`
	Profile   *profileResponse `json:"profile"`
}

type viewResponse struct {
	Screen           string                 `json:"screen"`
	Query            string                 `json:"query"`
	Results          []searchResultResponse `json:"results"`
	SelectedPersonID *string                `json:"selected_person_id"`
	Profile          *profileResponse       `json:"profile"`
}

func toProfileResponse(p *domain.Profile) *profileResponse {
	if p == nil {
		return nil
	}
	return &profileResponse{
		ID:                 p.ID.String(),
		Name:               p.Name,
		Email:              p.Email,
		Role:               p.Role.String(),
		IsActive:           p.IsActive,
		MustChangePassword: p.MustChangePassword,
		CreatedAt:          p.CreatedAt,
	}
}

func toProfileList(list []domain.Profile) []profileResponse {
	out := make([]profileResponse, len(list))
	for i := range list {
		out[i] = *toProfileResponse(&list[i])
	}
	return out
}

func toPersonResponse(p domain.Person) personResponse {
	return personResponse{
		ID:         p.ID.String(),
		FullName:   p.FullName,
		NationalID: p.NationalID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toPersonList(list []domain.Person) []personResponse {
	out := make([]personResponse, len(list))
	for i, p := range list {
		out[i] = toPersonResponse(p)
	}
	return out
}

func toSearchResults(list []domain.PersonWithCaseCount) []searchResultResponse {
	out := make([]searchResultResponse, len(list))
	for i, p := range list {
		out[i] = searchResultResponse{personResponse: toPersonResponse(p.Person), CaseCount: p.CaseCount}
	}
	return out
}

func toCaseResponse(c domain.Case) caseResponse {
	resp := caseResponse{
		ID:         c.ID.String(),
		PersonID:   c.PersonID.String(),
		CaseType:   c.CaseType,
		CourtName:  c.CourtName,
		CaseNumber: c.CaseNumber,
		Decision:   c.Decision,
		Status:     c.Status.String(),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	if c.SessionDate != nil {
		d := c.SessionDate.Format(dateLayout)
		resp.SessionDate = &d
	}
	return resp
}

func toCaseList(list []domain.CaseWithPerson) []caseResponse {
	out := make([]caseResponse, len(list))
	for i, c := range list {
		out[i] = toCaseResponse(c.Case)
		if c.Person != nil {
			p := toPersonResponse(*c.Person)
			out[i].Person = &p
		}
	}
	return out
}

func toPersonDetail(p *domain.PersonWithCases) personDetailResponse {
	cases := make([]caseResponse, len(p.Cases))
	for i, c := range p.Cases {
		cases[i] = toCaseResponse(c)
	}
	return personDetailResponse{personResponse: toPersonResponse(p.Person), Cases: cases}
}

func toSearchLogList(list []domain.SearchLogEntry) []searchLogResponse {
	out := make([]searchLogResponse, len(list))
	for i, e := range list {
		out[i] = searchLogResponse{ID: e.ID.String(), SearchedAt: e.SearchedAt}
		if e.User != nil {
			out[i].User = &searchLogUserResp{Name: e.User.Name, Email: e.User.Email}
		}
		if e.Person != nil {
			out[i].Person = &searchLogPersonResp{FullName: e.Person.FullName, NationalID: e.Person.NationalID}
		}
	}
	return out
}

func toSessionResponse(res *session.Result) sessionResponse {
	return sessionResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		Screen:    res.Session.Route().String(),
		Profile:   toProfileResponse(res.Session.Profile()),
	}
}

func toViewResponse(sess *session.Session) viewResponse {
	snap := sess.Navigator().Snapshot()
	resp := viewResponse{
		Screen:  sess.Route().String(),
		Query:   snap.Query,
		Results: toSearchResults(snap.Results),
		Profile: toProfileResponse(sess.Profile()),
	}
	if snap.SelectedPersonID != nil {
		id := snap.SelectedPersonID.String()
		resp.SelectedPersonID = &id
	}
	return resp
}

// idParam parses the {id} URL parameter.
func idParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, domain.NewValidationError("id", "invalid id")
	}
	return id, nil
}

// confirmParam reads the ?confirm= flag required by destructive actions.
func confirmParam(r *http.Request) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return err == nil && v
}

func parseOptionalUUID(field, s string) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(field, "invalid id")
	}
	return id, nil
}

func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if t, err := time.Parse(dateLayout, v); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	return nil, domain.NewValidationError(field, "must be a date (YYYY-MM-DD)")
}

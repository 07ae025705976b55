package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
	"github.com/heartmarshall/caselookup-backend/internal/service/admin"
	"github.com/heartmarshall/caselookup-backend/internal/transport/respond"
)

type adminService interface {
	ListUsers(ctx context.Context) ([]domain.Profile, error)
	CreateUser(ctx context.Context, input admin.CreateUserInput) (*domain.Profile, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input admin.UpdateUserInput) (*domain.Profile, error)
	ResetPassword(ctx context.Context, id uuid.UUID, input admin.ResetPasswordInput) error

	ListPeople(ctx context.Context) ([]domain.Person, error)
	CreatePerson(ctx context.Context, input domain.PersonInput) (*domain.Person, error)
	UpdatePerson(ctx context.Context, id uuid.UUID, input domain.PersonInput) (*domain.Person, error)
	DeletePerson(ctx context.Context, id uuid.UUID, confirm bool) error

	ListCases(ctx context.Context) ([]domain.CaseWithPerson, error)
	CreateCase(ctx context.Context, input domain.CaseInput) (*domain.Case, error)
	UpdateCase(ctx context.Context, id uuid.UUID, input domain.CaseInput) (*domain.Case, error)
	DeleteCase(ctx context.Context, id uuid.UUID, confirm bool) error

	ListSearchLogs(ctx context.Context) ([]domain.SearchLogEntry, error)
}

// AdminHandler serves the admin console endpoints.
type AdminHandler struct {
	svc adminService
	rs  *respond.Responder
	log *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc adminService, rs *respond.Responder, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, rs: rs, log: logger.With("handler", "admin")}
}

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

type personRequest struct {
	FullName   string  `json:"full_name"`
	NationalID *string `json:"national_id"`
}

type caseRequest struct {
	PersonID    string  `json:"person_id"`
	CaseType    string  `json:"case_type"`
	CourtName   string  `json:"court_name"`
	CaseNumber  string  `json:"case_number"`
	SessionDate *string `json:"session_date"`
	Decision    *string `json:"decision"`
	Status      string  `json:"status"`
}

func (req caseRequest) toInput() (domain.CaseInput, error) {
	personID, err := parseOptionalUUID("person_id", req.PersonID)
	if err != nil {
		return domain.CaseInput{}, err
	}
	date, err := parseDate("session_date", req.SessionDate)
	if err != nil {
		return domain.CaseInput{}, err
	}
	return domain.CaseInput{
		PersonID:    personID,
		CaseType:    req.CaseType,
		CourtName:   req.CourtName,
		CaseNumber:  req.CaseNumber,
		SessionDate: date,
		Decision:    req.Decision,
		Status:      domain.CaseStatus(strings.TrimSpace(req.Status)),
	}, nil
}

// ─── Users ──────────────────────────────────────────────────────────────────

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, toProfileList(users))
}

// CreateUser handles POST /admin/users.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !h.rs.Decode(w, r, &req) {
		return
	}

	user, err := h.svc.CreateUser(r.Context(), admin.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     domain.Role(strings.TrimSpace(req.Role)),
	})
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusCreated, toProfileResponse(user))
}

// UpdateUser handles PATCH /admin/users/{id}.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	var req updateUserRequest
	if !h.rs.Decode(w, r, &req) {
		return
	}

	input := admin.UpdateUserInput{Name: req.Name, IsActive: req.IsActive}
	if req.Role != nil {
		role := domain.Role(strings.TrimSpace(*req.Role))
		input.Role = &role
	}

	user, err := h.svc.UpdateUser(r.Context(), id, input)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, toProfileResponse(user))
}

// ResetPassword handles POST /admin/users/{id}/reset-password.
func (h *AdminHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	var req resetPasswordRequest
	if !h.rs.Decode(w, r, &req) {
		return
	}

	if err := h.svc.ResetPassword(r.Context(), id, admin.ResetPasswordInput{Password: req.Password}); err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.NoContent(w)
}

// ─── People ─────────────────────────────────────────────────────────────────

// ListPeople handles GET /admin/people.
func (h *AdminHandler) ListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.svc.ListPeople(r.Context())
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, toPersonList(people))
}

// CreatePerson handles POST /admin/people.
func (h *AdminHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if !h.rs.Decode(w, r, &req) {
		return
	}

	p, err := h.svc.CreatePerson(r.Context(), domain.PersonInput{FullName: req.FullName, NationalID: req.NationalID})
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusCreated, toPersonResponse(*p))
}

// UpdatePerson handles PUT /admin/people/{id}.
func (h *AdminHandler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	var req personRequest
	if !h.rs.Decode(w, r, &req) {
		return
	}

	p, err := h.svc.UpdatePerson(r.Context(), id, domain.PersonInput{FullName: req.FullName, NationalID: req.NationalID})
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, toPersonResponse(*p))
}

// DeletePerson handles DELETE /admin/people/{id}?confirm=true.
func (h *AdminHandler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	if err := h.svc.DeletePerson(r.Context(), id, confirmParam(r)); err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.NoContent(w)
}

// ─── Cases ──────────────────────────────────────────────────────────────────

// ListCases handles GET /admin/cases.
func (h *AdminHandler) ListCases(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListCases(r.Context())
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, toCaseList(list))
}

// CreateCase handles POST /admin/cases.
func (h *AdminHandler) CreateCase(w http.ResponseWriter, r *http.Request) {
	var req caseRequest
	if !h.rs.Decode(w, r, &req) {
		return
	}
	input, err := req.toInput()
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}

	c, err := h.svc.CreateCase(r.Context(), input)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusCreated, toCaseResponse(*c))
}

// UpdateCase handles PUT /admin/cases/{id}.
func (h *AdminHandler) UpdateCase(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	var req caseRequest
	if !h.rs.Decode(w, r, &req) {
		return
	}
	input, err := req.toInput()
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}

	c, err := h.svc.UpdateCase(r.Context(), id, input)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, toCaseResponse(*c))
}

// DeleteCase handles DELETE /admin/cases/{id}?confirm=true.
func (h *AdminHandler) DeleteCase(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	if err := h.svc.DeleteCase(r.Context(), id, confirmParam(r)); err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.NoContent(w)
}

// ─── Search logs ────────────────────────────────────────────────────────────

// ListSearchLogs handles GET /admin/search-logs.
func (h *AdminHandler) ListSearchLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.svc.ListSearchLogs(r.Context())
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, toSearchLogList(logs))
}

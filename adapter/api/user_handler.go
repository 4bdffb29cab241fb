package api

import (
	"log/slog"
	"net/http"

	"github.com/inheaven/petservice/internal/identity/application/commands"
	"github.com/inheaven/petservice/internal/identity/application/queries"
)

// UserHandler handles user directory requests.
type UserHandler struct {
	register *commands.RegisterUserHandler
	get      *queries.GetUserHandler
	list     *queries.ListUsersHandler
	logger   *slog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(register *commands.RegisterUserHandler, get *queries.GetUserHandler, list *queries.ListUsersHandler, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{register: register, get: get, list: list, logger: logger}
}

type registerRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// Register handles POST /api/v1/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if !decodeBody(w, r, h.logger, &body) {
		return
	}

	user, err := h.register.Handle(r.Context(), commands.RegisterUserCommand{
		Username: body.Username,
		FullName: body.FullName,
		Email:    body.Email,
		Phone:    body.Phone,
		Role:     body.Role,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, queries.ToUserDTO(user))
}

// List handles GET /api/v1/users?role=
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	dtos, err := h.list.Handle(r.Context(), queries.ListUsersQuery{Role: r.URL.Query().Get("role")})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Get handles GET /api/v1/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePathID(w, r, h.logger, "id")
	if !ok {
		return
	}
	dto, err := h.get.Handle(r.Context(), queries.GetUserQuery{UserID: id})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/appointments/application/commands"
	"github.com/inheaven/petservice/internal/appointments/application/queries"
	"github.com/inheaven/petservice/internal/appointments/domain"
)

// AppointmentHandler handles appointment and queue requests.
type AppointmentHandler struct {
	create        *commands.CreateAppointmentHandler
	update        *commands.UpdateAppointmentHandler
	checkIn       *commands.CheckInHandler
	dispatchNext  *commands.DispatchNextHandler
	complete      *commands.CompleteAppointmentHandler
	returnToQueue *commands.ReturnToQueueHandler
	updateNote    *commands.UpdateNoteHandler
	cancel        *commands.CancelAppointmentHandler
	delete        *commands.DeleteAppointmentHandler
	get           *queries.GetAppointmentHandler
	list          *queries.ListAppointmentsHandler
	search        *queries.SearchAppointmentsHandler
	queue         *queries.ListQueueHandler
	describer     *queries.Describer
	logger        *slog.Logger
}

// AppointmentHandlerConfig holds dependencies for the appointment handler.
type AppointmentHandlerConfig struct {
	Create        *commands.CreateAppointmentHandler
	Update        *commands.UpdateAppointmentHandler
	CheckIn       *commands.CheckInHandler
	DispatchNext  *commands.DispatchNextHandler
	Complete      *commands.CompleteAppointmentHandler
	ReturnToQueue *commands.ReturnToQueueHandler
	UpdateNote    *commands.UpdateNoteHandler
	Cancel        *commands.CancelAppointmentHandler
	Delete        *commands.DeleteAppointmentHandler
	Get           *queries.GetAppointmentHandler
	List          *queries.ListAppointmentsHandler
	Search        *queries.SearchAppointmentsHandler
	Queue         *queries.ListQueueHandler
	Describer     *queries.Describer
	Logger        *slog.Logger
}

// NewAppointmentHandler creates a new appointment handler.
func NewAppointmentHandler(cfg AppointmentHandlerConfig) *AppointmentHandler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &AppointmentHandler{
		create:        cfg.Create,
		update:        cfg.Update,
		checkIn:       cfg.CheckIn,
		dispatchNext:  cfg.DispatchNext,
		complete:      cfg.Complete,
		returnToQueue: cfg.ReturnToQueue,
		updateNote:    cfg.UpdateNote,
		cancel:        cfg.Cancel,
		delete:        cfg.Delete,
		get:           cfg.Get,
		list:          cfg.List,
		search:        cfg.Search,
		queue:         cfg.Queue,
		describer:     cfg.Describer,
		logger:        cfg.Logger,
	}
}

// bookingRequest is the body of create and update requests.
type bookingRequest struct {
	Name              string     `json:"name"`
	PetName           string     `json:"pet_name"`
	PetType           string     `json:"type"`
	Breed             string     `json:"breed"`
	HealthStatus      string     `json:"health_status"`
	HealthHistory     string     `json:"health_history"`
	Note              string     `json:"note"`
	AppointmentTime   time.Time  `json:"appointment_time"`
	PreferredDoctorID *uuid.UUID `json:"preferred_doctor_id,omitempty"`
}

func (b bookingRequest) details() domain.BookingDetails {
	return domain.BookingDetails{
		Name:              b.Name,
		PetName:           b.PetName,
		PetType:           b.PetType,
		Breed:             b.Breed,
		HealthStatus:      b.HealthStatus,
		HealthHistory:     b.HealthHistory,
		Note:              b.Note,
		AppointmentTime:   b.AppointmentTime,
		PreferredDoctorID: b.PreferredDoctorID,
	}
}

type noteRequest struct {
	Note string `json:"note"`
}

// Create handles POST /api/v1/appointments/user/{userId}
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.pathID(w, r, "userId")
	if !ok {
		return
	}
	var body bookingRequest
	if !h.decode(w, r, &body) {
		return
	}

	a, err := h.create.Handle(r.Context(), commands.CreateAppointmentCommand{
		CustomerID: customerID,
		Details:    body.details(),
	})
	h.respond(w, r, http.StatusCreated, a, err)
}

// Update handles PUT /api/v1/appointments/{id}
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	var body bookingRequest
	if !h.decode(w, r, &body) {
		return
	}

	a, err := h.update.Handle(r.Context(), commands.UpdateAppointmentCommand{
		AppointmentID: id,
		Details:       body.details(),
	})
	h.respond(w, r, http.StatusOK, a, err)
}

// Get handles GET /api/v1/appointments/{id}
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	dto, err := h.get.Handle(r.Context(), queries.GetAppointmentQuery{AppointmentID: id})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// List handles GET /api/v1/appointments
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	dtos, err := h.list.Handle(r.Context(), queries.ListAppointmentsQuery{})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListByOwner handles GET /api/v1/appointments/user/{userId}
func (h *AppointmentHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.pathID(w, r, "userId")
	if !ok {
		return
	}
	dtos, err := h.list.Handle(r.Context(), queries.ListAppointmentsQuery{OwnerID: &ownerID})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Transition routes POST /api/v1/appointments/{id}/{action} to the
// check-in, complete, return-to-queue and cancel operations.
func (h *AppointmentHandler) Transition(w http.ResponseWriter, r *http.Request) {
	switch r.PathValue("action") {
	case "check-in":
		h.CheckIn(w, r)
	case "complete":
		h.Complete(w, r)
	case "return-to-queue":
		h.ReturnToQueue(w, r)
	case "cancel":
		h.Cancel(w, r)
	default:
		http.NotFound(w, r)
	}
}

// CheckIn handles POST /api/v1/appointments/{id}/check-in
func (h *AppointmentHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	a, err := h.checkIn.Handle(r.Context(), commands.CheckInCommand{AppointmentID: id})
	h.respond(w, r, http.StatusOK, a, err)
}

// Complete handles POST /api/v1/appointments/{id}/complete?doctorId=
func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	doctorID, err := uuid.Parse(r.URL.Query().Get("doctorId"))
	if err != nil {
		writeError(w, r, h.logger, invalidInput("query parameter doctorId must be a UUID"))
		return
	}

	a, err := h.complete.Handle(r.Context(), commands.CompleteAppointmentCommand{
		AppointmentID: id,
		DoctorID:      doctorID,
	})
	h.respond(w, r, http.StatusOK, a, err)
}

// DispatchNext handles GET /api/v1/appointments/next-for-doctor/{doctorId}.
// It changes state despite the method; existing clients call it with GET.
func (h *AppointmentHandler) DispatchNext(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := h.pathID(w, r, "doctorId")
	if !ok {
		return
	}
	a, err := h.dispatchNext.Handle(r.Context(), commands.DispatchNextCommand{DoctorID: doctorID})
	h.respond(w, r, http.StatusOK, a, err)
}

// ReturnToQueue handles POST /api/v1/appointments/{id}/return-to-queue
func (h *AppointmentHandler) ReturnToQueue(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	a, err := h.returnToQueue.Handle(r.Context(), commands.ReturnToQueueCommand{AppointmentID: id})
	h.respond(w, r, http.StatusOK, a, err)
}

// Cancel handles POST /api/v1/appointments/{id}/cancel
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	a, err := h.cancel.Handle(r.Context(), commands.CancelAppointmentCommand{AppointmentID: id})
	h.respond(w, r, http.StatusOK, a, err)
}

// UpdateNote handles PUT /api/v1/appointments/{id}/update-note
func (h *AppointmentHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	var body noteRequest
	if !h.decode(w, r, &body) {
		return
	}

	a, err := h.updateNote.Handle(r.Context(), commands.UpdateNoteCommand{AppointmentID: id, Note: body.Note})
	h.respond(w, r, http.StatusOK, a, err)
}

// Delete handles DELETE /api/v1/appointments/{id}
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.delete.Handle(r.Context(), commands.DeleteAppointmentCommand{AppointmentID: id}); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search handles GET /api/v1/appointments/search?name=
func (h *AppointmentHandler) Search(w http.ResponseWriter, r *http.Request) {
	h.runSearch(w, r, queries.SearchAppointmentsQuery{Name: r.URL.Query().Get("name")})
}

// SearchWithStatus handles GET /api/v1/appointments/search-with-status?name=&status=.
// An empty status searches every status.
func (h *AppointmentHandler) SearchWithStatus(w http.ResponseWriter, r *http.Request) {
	query := queries.SearchAppointmentsQuery{Name: r.URL.Query().Get("name")}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		query.Status = &status
	}
	h.runSearch(w, r, query)
}

func (h *AppointmentHandler) runSearch(w http.ResponseWriter, r *http.Request, query queries.SearchAppointmentsQuery) {
	dtos, err := h.search.Handle(r.Context(), query)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Queue handles GET /api/v1/appointments/queue
func (h *AppointmentHandler) Queue(w http.ResponseWriter, r *http.Request) {
	entries, err := h.queue.Handle(r.Context(), queries.ListQueueQuery{})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *AppointmentHandler) respond(w http.ResponseWriter, r *http.Request, status int, a *domain.Appointment, err error) {
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	dto, err := h.describer.Describe(r.Context(), a)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, status, dto)
}

func (h *AppointmentHandler) pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	return parsePathID(w, r, h.logger, name)
}

func (h *AppointmentHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	return decodeBody(w, r, h.logger, dst)
}

func parsePathID(w http.ResponseWriter, r *http.Request, logger *slog.Logger, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, r, logger, invalidInput("path parameter %s must be a UUID", name))
		return uuid.Nil, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, r, logger, invalidInput("malformed request body: %v", err))
		return false
	}
	return true
}

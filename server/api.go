package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"snakearena/game"
)

const defaultRoom = "room-1"

// Handler HTTP/WS 入口，持有显式传入的房间管理器
type Handler struct {
	rooms *RoomManager
	log   *zap.SugaredLogger
}

func NewHandler(rooms *RoomManager, log *zap.SugaredLogger) *Handler {
	return &Handler{rooms: rooms, log: log}
}

type commandResponse struct {
	OK    bool          `json:"ok"`
	State game.Snapshot `json:"state"`
}

// handleCommand POST /rooms/{room}/start|pause|resume
func (h *Handler) handleCommand(cmd Command) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		room := h.rooms.GetOrCreateRoom(chi.URLParam(r, "room"))
		h.reply(w, room, room.OnInput(Input{Command: cmd}))
	}
}

// HandleDirection POST /rooms/{room}/direction/{dir}
func (h *Handler) HandleDirection(w http.ResponseWriter, r *http.Request) {
	dir, err := game.ParseDirection(chi.URLParam(r, "dir"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	room := h.rooms.GetOrCreateRoom(chi.URLParam(r, "room"))
	h.reply(w, room, room.OnInput(Input{Command: CmdMove, Dir: dir}))
}

// HandleState GET /rooms/{room}/state
func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	room := h.rooms.GetOrCreateRoom(chi.URLParam(r, "room"))
	writeJSON(w, http.StatusOK, room.Game().Snapshot())
}

func (h *Handler) reply(w http.ResponseWriter, room *Room, ok bool) {
	status := http.StatusOK
	if !ok {
		status = http.StatusConflict
	}
	writeJSON(w, status, commandResponse{OK: ok, State: room.Game().Snapshot()})
}

func roomFromQuery(r *http.Request) string {
	if id := r.URL.Query().Get("room"); id != "" {
		return id
	}
	return defaultRoom
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

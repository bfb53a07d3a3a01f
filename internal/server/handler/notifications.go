package handler

import (
	"errors"
	"net/http"
	"strings"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/huddle/internal/notification"
	"github.com/garrettladley/huddle/internal/storage"
	"github.com/garrettladley/huddle/internal/validator"
	"github.com/garrettladley/huddle/internal/xcontext"
	"github.com/garrettladley/huddle/internal/xerrors"
	"github.com/garrettladley/huddle/internal/xhttp"
	"github.com/garrettladley/huddle/internal/xslog"
)

const maxCreateBody = 64 << 10

type Notifications struct {
	store          storage.NotificationStore
	crossUserWrite bool
}

type NotificationsOption func(*Notifications)

// WithCrossUserCreate lets any caller create notifications for other users.
// Only the development server enables it.
func WithCrossUserCreate() NotificationsOption {
	return func(h *Notifications) { h.crossUserWrite = true }
}

func NewNotifications(store storage.NotificationStore, opts ...NotificationsOption) *Notifications {
	h := &Notifications{store: store}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleList handles GET /api/v1/notifications. The response is a bare
// JSON array, newest first.
func (h *Notifications) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := xslog.FromContext(ctx)

	userID, ok := xcontext.GetUserID(ctx)
	if !ok {
		xerrors.WriteError(ctx, w, xerrors.Unauthorized(xerrors.WithMessage("missing user context")))
		return
	}

	notifications, err := h.store.List(ctx, userID)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("failed to fetch notifications"), xerrors.WithCause(err)))
		return
	}
	if notifications == nil {
		notifications = []notification.Notification{}
	}

	logger.DebugContext(ctx, "listed notifications", xslog.Count(len(notifications)))

	xhttp.WriteOK(w, notifications)
}

type createRequest struct {
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	GroupID   string `json:"groupId"`
	GroupName string `json:"groupName"`
}

var _ validator.Validator = (*createRequest)(nil)

func (c *createRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(c.Title) == "" && strings.TrimSpace(c.GroupName) == "" {
		errs["title"] = "title or groupName is required"
	}
	if len(c.Title) > 200 {
		errs["title"] = "must be at most 200 characters"
	}
	if len(c.Body) > 2000 {
		errs["body"] = "must be at most 2000 characters"
	}
	if c.GroupName != "" && c.GroupID == "" {
		errs["groupId"] = "required when groupName is set"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// HandleCreate handles POST /api/v1/notifications. The notification is
// addressed to the caller. A different userId is rejected unless
// cross-user creation is enabled.
func (h *Notifications) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := xslog.FromContext(ctx)

	callerID, ok := xcontext.GetUserID(ctx)
	if !ok {
		xerrors.WriteError(ctx, w, xerrors.Unauthorized(xerrors.WithMessage("missing user context")))
		return
	}

	var req createRequest
	if err := go_json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCreateBody)).Decode(&req); err != nil {
		xerrors.WriteError(ctx, w, xerrors.BadRequest(xerrors.WithMessage("invalid JSON body"), xerrors.WithCause(err)))
		return
	}
	if verr := validator.Validate(&req); verr != nil {
		xerrors.WriteError(ctx, w, verr)
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = callerID
	}
	if userID != callerID && !h.crossUserWrite {
		xerrors.WriteError(ctx, w, xerrors.Forbidden(xerrors.WithMessage("cannot create notifications for another user")))
		return
	}

	created, err := h.store.Add(ctx, userID, notification.Notification{
		Title:     req.Title,
		Body:      req.Body,
		GroupID:   req.GroupID,
		GroupName: req.GroupName,
	})
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("failed to create notification"), xerrors.WithCause(err)))
		return
	}

	logger.InfoContext(ctx, "created notification",
		xslog.NotificationID(created.ID),
		xslog.UserID(userID),
	)

	xhttp.WriteJSON(w, http.StatusCreated, created)
}

// HandleMarkRead handles POST /api/v1/notifications/{id}/read.
func (h *Notifications) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := xcontext.GetUserID(ctx)
	if !ok {
		xerrors.WriteError(ctx, w, xerrors.Unauthorized(xerrors.WithMessage("missing user context")))
		return
	}

	id := r.PathValue("id")
	if id == "" {
		xerrors.WriteError(ctx, w, xerrors.BadRequest(xerrors.WithMessage("missing notification id")))
		return
	}

	if err := h.store.MarkRead(ctx, userID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			xerrors.WriteError(ctx, w, xerrors.NotFound(xerrors.WithMessage("notification not found")))
			return
		}
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("failed to mark notification read"), xerrors.WithCause(err)))
		return
	}

	xhttp.WriteNoContent(w)
}

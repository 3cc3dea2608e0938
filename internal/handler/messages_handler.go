package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"lancini/internal/app/model"
	"lancini/internal/pkg/logx"
)

type MessagesData struct {
	Conversations []model.Conversation
	Unread        int
	Summary       string
}

// HandleMessages lists conversations in backend order with the total unread count.
// A failed fetch renders the empty state.
func HandleMessages(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		convs, err := backendConn(r).Conversations()
		if err != nil {
			logx.Ctx(r.Context()).Error().Err(err).Msg("messages: failed to fetch conversations")
			convs = nil
		}

		total := model.TotalUnread(convs)
		deps.render(w, r, http.StatusOK, "messages", "Messages", "messages", MessagesData{
			Conversations: convs,
			Unread:        total,
			Summary:       model.UnreadSummary(total),
		})
	}
}

type ThreadData struct {
	Partner    model.PartnerSummary
	Messages   []model.Message
	MyID       string
	LoadFailed bool
}

// HandleThread shows the message history with one partner.
func HandleThread(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		partnerID := chi.URLParam(r, "partnerID")
		data := ThreadData{Partner: model.PartnerSummary{ID: partnerID}}

		if user := sessionStore(r).User(); user != nil {
			data.MyID = user.ID
		}

		thread, err := backendConn(r).Thread(partnerID)
		if err != nil {
			logx.Ctx(r.Context()).Error().Err(err).Str("partner_id", partnerID).Msg("messages: failed to fetch thread")
			data.LoadFailed = true
		} else {
			if thread.Partner.ID != "" {
				data.Partner = thread.Partner
			}
			data.Messages = thread.Messages
		}

		deps.render(w, r, http.StatusOK, "thread", "Messages", "messages", data)
	}
}

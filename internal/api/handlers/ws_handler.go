package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yoockh/yoointerview/internal/services"
	"github.com/yoockh/yoointerview/internal/utils"
)

// WSHandler drives a live interview over one WebSocket: the client sends
// answers as they are recorded and receives the processing result for each,
// instead of polling the REST endpoints between questions.
type WSHandler struct {
	registry *services.SessionRegistry
	upgrader websocket.Upgrader
}

func NewWSHandler(registry *services.SessionRegistry) *WSHandler {
	return &WSHandler{
		registry: registry,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsClientMsg struct {
	Type         string `json:"type"`
	ResponseText string `json:"response_text"`
	MediaBase64  string `json:"media_base64"`
	Force        bool   `json:"force"`

	// status -> no fields
}

type wsServerMsg struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteJSON(v)
}

func (w *wsConn) writeErr(code utils.Code, message string) {
	_ = w.writeJSON(wsServerMsg{Type: "error", Code: string(code), Message: message})
}

func (h *WSHandler) InterviewWS(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sess, err := h.registry.Get(c.Param("session_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if sess.OwnerID() != userID {
		writeError(c, utils.E(utils.CodeForbidden, "WSHandler.InterviewWS", "session belongs to another user", nil))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}

	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	_ = wc.writeJSON(wsServerMsg{Type: "status", Payload: sess.Progress()})

	for {
		_, data, rerr := conn.ReadMessage()
		if rerr != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var msg wsClientMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			wc.writeErr(utils.CodeInvalidArgument, "invalid json")
			continue
		}

		switch msg.Type {
		case "response":
			if msg.ResponseText == "" {
				wc.writeErr(utils.CodeInvalidArgument, "response_text is required")
				continue
			}

			var media []byte
			if msg.MediaBase64 != "" {
				media, err = base64.StdEncoding.DecodeString(msg.MediaBase64)
				if err != nil {
					wc.writeErr(utils.CodeInvalidArgument, "media_base64 is not valid base64")
					continue
				}
			}

			result, err := sess.SubmitResponse(c.Request.Context(), msg.ResponseText, media)
			if err != nil {
				wc.writeErr(appCode(err), "failed to process response")
				continue
			}
			if err := wc.writeJSON(wsServerMsg{Type: "result", Payload: result}); err != nil {
				return
			}

		case "status":
			if err := wc.writeJSON(wsServerMsg{Type: "status", Payload: sess.Progress()}); err != nil {
				return
			}

		case "end_session":
			summary, err := sess.End(msg.Force)
			if err != nil {
				wc.writeErr(appCode(err), "failed to end session")
				continue
			}
			_ = wc.writeJSON(wsServerMsg{Type: "summary", Payload: summary})
			return

		default:
			wc.writeErr(utils.CodeInvalidArgument, "unknown message type")
		}
	}
}

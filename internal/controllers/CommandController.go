package controllers

import (
	"net/http"
	"probpick/internal/commands"
	"probpick/internal/providers"
	"strconv"

	json "github.com/goccy/go-json"
)

// CommandController exposes the chat commands over HTTP so any chat adapter
// can forward them.
type CommandController struct {
	logger    providers.Logger
	commander commands.CommanderInterface
}

func NewCommandController(logger providers.Logger, commander commands.CommanderInterface) *CommandController {
	return &CommandController{
		logger:    logger,
		commander: commander,
	}
}

func (cc *CommandController) writeReply(w http.ResponseWriter, r *http.Request, reply commands.Reply) {
	gson, err := json.Marshal(reply)
	if err != nil {
		cc.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Unable to encode reply: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (cc *CommandController) Select(w http.ResponseWriter, r *http.Request) {
	cc.writeReply(w, r, cc.commander.Select(r.Context(), r.URL.Query().Get("tier")))
}

// queryInt reads an optional integer parameter; a missing one is zero.
func queryInt(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}

func (cc *CommandController) History(w http.ResponseWriter, r *http.Request) {
	count, ok := queryInt(r, "count")
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	cc.writeReply(w, r, cc.commander.History(r.Context(), count))
}

func (cc *CommandController) Stats(w http.ResponseWriter, r *http.Request) {
	cc.writeReply(w, r, cc.commander.Stats(r.Context()))
}

func (cc *CommandController) Reset(w http.ResponseWriter, r *http.Request) {
	cc.writeReply(w, r, cc.commander.Reset(r.Context()))
}

func (cc *CommandController) Archives(w http.ResponseWriter, r *http.Request) {
	index, ok := queryInt(r, "index")
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	cc.writeReply(w, r, cc.commander.Archives(r.Context(), index))
}

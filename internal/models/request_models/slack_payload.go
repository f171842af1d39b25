package request_models

// SlackActionBody is the JSON action payload carried in the form-encoded
// "payload" field of a signed webhook delivery. Block actions carry the
// action id in actions[0]; older-style payloads use callback_id.
type SlackActionBody struct {
	Type string `json:"type"`

	User struct {
		ID string `json:"id"`
	} `json:"user"`

	CallbackID string `json:"callback_id"`
	TriggerID  string `json:"trigger_id"`

	Actions []struct {
		ActionID string `json:"action_id"`
	} `json:"actions"`

	View *struct {
		ID string `json:"id"`
	} `json:"view"`
}

// ActionID resolves the action identifier for either payload style.
func (b *SlackActionBody) ActionID() string {
	if b.Type == "block_actions" && len(b.Actions) > 0 {
		return b.Actions[0].ActionID
	}
	return b.CallbackID
}

// ViewID returns the originating modal's view id, or "" when the event came
// from a fresh command/button.
func (b *SlackActionBody) ViewID() string {
	if b.Type == "block_actions" && b.View != nil {
		return b.View.ID
	}
	return ""
}

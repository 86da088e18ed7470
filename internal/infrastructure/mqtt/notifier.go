package mqtt

import (
	"encoding/json"

	"github.com/nerrad567/plain-automation/internal/infrastructure/logging"
	"github.com/nerrad567/plain-automation/internal/rules"
)

// ChangeNotifier bridges rule change events onto MQTT. It implements
// rules.Notifier and publishes one message per mutation on the
// automation's own topic.
type ChangeNotifier struct {
	client *Client
	logger *logging.Logger
}

// NewChangeNotifier creates a notifier publishing through client.
func NewChangeNotifier(client *Client, logger *logging.Logger) *ChangeNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	return &ChangeNotifier{
		client: client,
		logger: logger.With("component", "mqtt"),
	}
}

// NotifyChange publishes the event asynchronously. Notifiers must not
// block the write path, and a broker outage must not fail automation
// writes, so errors are only logged.
func (n *ChangeNotifier) NotifyChange(event rules.ChangeEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("marshalling change event failed", "id", event.ID, "error", err)
		return
	}

	go func() {
		topic := Topics{}.AutomationChange(event.ID)
		if err := n.client.PublishEvent(topic, payload); err != nil {
			n.logger.Warn("publishing change event failed", "topic", topic, "error", err)
		}
	}()
}

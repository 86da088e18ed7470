package mqtt

// topicPrefix is the root of every topic this service publishes.
const topicPrefix = "plainauto"

// Topics builds the topic names used by Plain Automation. Methods on
// an empty Topics value keep call sites short:
//
//	mqtt.Topics{}.AutomationChange("avondlamp.yaml")
type Topics struct{}

// SystemStatus is the retained availability topic. Carries online and
// offline payloads, including the LWT on unexpected disconnect.
func (Topics) SystemStatus() string {
	return topicPrefix + "/system/status"
}

// AutomationChange is the per-automation event topic. One message per
// create, update or delete of the identified automation.
func (Topics) AutomationChange(id string) string {
	return topicPrefix + "/automations/" + id
}

// Package mqtt publishes Plain Automation's change events to an MQTT
// broker.
//
// The integration is optional and publish-only: when enabled, every
// automation create, update and delete is announced on
// plainauto/automations/<id>, and the service's own availability is
// tracked on plainauto/system/status with a Last Will and Testament so
// subscribers can tell a crash from a graceful shutdown.
//
// The client wraps paho.mqtt.golang with auto-reconnect and
// exponential backoff. All methods are safe for concurrent use.
package mqtt

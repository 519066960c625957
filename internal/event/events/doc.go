// Package events defines the topics and payloads the editor host publishes
// on the event bus.
package events

// Package messaging is a broker-agnostic publish/consume client.
//
// NSQ, NATS, Kafka, Google Pub/Sub and an in-process broker share one
// Messaging interface; NewFromDriver picks the backend by name.
package messaging

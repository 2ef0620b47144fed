// Package notify publishes applied node state changes to an MQTT broker so other
// home automation systems can follow the mesh without polling the bridge.
package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/meshgate/pkg/device"
)

const (
	// TopicPrefix is the root of every state topic.
	TopicPrefix = "meshgate/nodes"

	stateQoS = 1

	connectTimeout = 10 * time.Second
	publishTimeout = 2 * time.Second
	quiesceMillis  = 250
)

var ErrConnectionFailed = errors.New("mqtt connection failed")

// publisher is the part of pahomqtt.Client the notifier uses.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) pahomqtt.Token
	Disconnect(quiesce uint)
}

// StatePayload is the retained message body for one node.
type StatePayload struct {
	NodeID    string    `json:"nodeID"`
	IsOn      bool      `json:"isOn"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher implements device.StateNotifier over MQTT.
type Publisher struct {
	client  publisher
	timeout time.Duration
	now     func() time.Time
}

var _ device.StateNotifier = (*Publisher)(nil)

// Connect dials brokerURL (e.g. tcp://localhost:1883) and returns a Publisher.
// The paho client reconnects on its own after the first successful connect.
func Connect(brokerURL, clientID string) (*Publisher, error) {
	opts := pahomqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetCleanSession(true)

	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		log.Warn().Err(err).Str("broker", brokerURL).Msg("MQTT connection lost")
	})
	opts.SetOnConnectHandler(func(_ pahomqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("MQTT connected")
	})

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	return newPublisher(client), nil
}

func newPublisher(client publisher) *Publisher {
	return &Publisher{
		client:  client,
		timeout: publishTimeout,
		now:     time.Now,
	}
}

// Topic returns the state topic of nodeID. MQTT wildcard and separator characters
// in the id are replaced so one node always maps to one topic level.
func Topic(nodeID string) string {
	clean := strings.NewReplacer("/", "_", "+", "_", "#", "_").Replace(nodeID)
	return TopicPrefix + "/" + clean + "/state"
}

// NodeStateChanged publishes a retained state message. Failures are logged only.
func (p *Publisher) NodeStateChanged(nodeID string, isOn bool) {
	payload, err := json.Marshal(StatePayload{
		NodeID:    nodeID,
		IsOn:      isOn,
		Timestamp: p.now().UTC(),
	})
	if err != nil {
		log.Error().Err(err).Str("nodeID", nodeID).Msg("Failed to encode state message")
		return
	}

	topic := Topic(nodeID)
	token := p.client.Publish(topic, stateQoS, true, payload)
	if !token.WaitTimeout(p.timeout) {
		log.Warn().Str("topic", topic).Dur("timeout", p.timeout).Msg("MQTT publish timed out")
		return
	}
	if err := token.Error(); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("MQTT publish failed")
	}
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(quiesceMillis)
}

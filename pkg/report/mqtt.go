// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Thermoquad/crcmeter/pkg/config"
	"github.com/Thermoquad/crcmeter/pkg/modbuscrc"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const mqttTimeout = 10 * time.Second

// publishClient is the part of mqtt.Client the publisher needs
type publishClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// Publisher sends responses as JSON to an MQTT topic
type Publisher struct {
	client   publishClient
	topic    string
	qos      byte
	retained bool
}

// NewPublisher connects to the configured broker
func NewPublisher(cfg config.MQTTConfig) (*Publisher, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("mqtt broker not configured")
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetConnectTimeout(mqttTimeout).
		SetAutoReconnect(false)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(mqttTimeout) {
		return nil, fmt.Errorf("mqtt connect to %s timed out", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s failed: %w", cfg.Broker, err)
	}

	return newPublisher(client, cfg), nil
}

func newPublisher(client publishClient, cfg config.MQTTConfig) *Publisher {
	return &Publisher{
		client:   client,
		topic:    cfg.Topic,
		qos:      cfg.QoS,
		retained: cfg.Retained,
	}
}

// Publish sends resp and waits for the broker to accept it
func (p *Publisher) Publish(resp modbuscrc.Response) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}

	token := p.client.Publish(p.topic, p.qos, p.retained, payload)
	if !token.WaitTimeout(mqttTimeout) {
		return fmt.Errorf("mqtt publish to %s timed out", p.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish to %s failed: %w", p.topic, err)
	}
	return nil
}

// Close disconnects from the broker
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}

package sinks

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/enertrace/mt174_telemetry/pkg/meterlink"
)

const (
	mqttConnectTimeout = 5 * time.Second
	mqttPublishTimeout = 5 * time.Second
)

// MQTTSink publishes indexes, derived rates and the power-down counter
// to a broker under a root topic. The connection is established lazily
// and reused across cycles.
type MQTTSink struct {
	host      string
	port      int
	clientID  string
	rootTopic string

	client mqtt.Client
	window *RateWindow

	// publish is swapped for a recording publisher in tests.
	publish func(topic string, payload string) error
}

func NewMQTTSink(host string, port int, clientID string, rootTopic string, interval time.Duration) *MQTTSink {
	log.WithFields(log.Fields{"host": host, "port": port}).Info("Created MQTT sink")
	sink := &MQTTSink{
		host:      host,
		port:      port,
		clientID:  clientID,
		rootTopic: rootTopic,
		window:    NewRateWindow(interval),
	}
	sink.publish = sink.brokerPublish
	return sink
}

func (s *MQTTSink) Name() string {
	return "mqtt"
}

func (s *MQTTSink) Process(timestamp time.Time, block meterlink.DataBlock) error {
	index, err := extractIndexes(block)
	if err != nil {
		return err
	}
	powerdown, err := extractPowerdown(block)
	if err != nil {
		return err
	}

	// current: rate against the previous accepted reading
	rates, ok, err := s.window.Advance(timestamp, index)
	if err != nil {
		log.WithError(err).Error("Rate window rejected reading")
	} else if ok {
		for i, name := range indexNames {
			if err := s.publishValue("current/"+name, timestamp, rates[i]); err != nil {
				return err
			}
		}
	}

	// index: the cumulative counters themselves
	for i, name := range indexNames {
		if err := s.publishValue("index/"+name, timestamp, index[i]); err != nil {
			return err
		}
		log.WithFields(log.Fields{"topic": "index/" + name, "kwh": index[i]}).Info("Published index")
	}

	// power down counter
	return s.publish(s.rootTopic+"/powerdown/counter", fmt.Sprintf("%d %d", timestamp.Unix(), powerdown))
}

func (s *MQTTSink) publishValue(topic string, timestamp time.Time, value float64) error {
	return s.publish(s.rootTopic+"/"+topic, fmt.Sprintf("%d %.3f", timestamp.Unix(), value))
}

func (s *MQTTSink) brokerPublish(topic string, payload string) error {
	if err := s.ensureConnected(); err != nil {
		return err
	}
	token := s.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(mqttPublishTimeout) {
		return fmt.Errorf("publish to %s timed out", topic)
	}
	return token.Error()
}

func (s *MQTTSink) ensureConnected() error {
	if s.client != nil && s.client.IsConnected() {
		return nil
	}

	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%d", s.host, s.port)).
		SetClientID(s.clientID).
		SetConnectTimeout(mqttConnectTimeout)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		return fmt.Errorf("broker connect to %s:%d timed out", s.host, s.port)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to broker: %w", err)
	}
	s.client = client
	return nil
}

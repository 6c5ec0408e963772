// Package metrics defines the prometheus collectors of key generation and file encryption.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Label constants
const (
	LabelStatus        = "status"
	LabelStatusFail    = "fail"
	LabelStatusSuccess = "success"

	LabelOperation       = "operation"
	LabelOperationEncode = "encode"
	LabelOperationDecode = "decode"

	LabelKeySize = "key_size"
)

// Metrics holds the collectors recorded by the application services
type Metrics struct {
	KeyGenerations        *prometheus.CounterVec
	KeyGenerationAttempts prometheus.Counter
	KeyGenerationDuration *prometheus.HistogramVec
	FileEncryptions       *prometheus.CounterVec
	FileDecryptions       *prometheus.CounterVec
	Blocks                *prometheus.CounterVec
}

// New creates the collectors and registers them on registerer. A nil registerer leaves them unregistered.
func New(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		KeyGenerations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rsa_oaep_key_generations_total",
				Help: "number of key pair generations success/failed",
			}, []string{LabelStatus}),
		KeyGenerationAttempts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "rsa_oaep_key_generation_attempts_total",
				Help: "number of key derivation attempts including retries",
			}),
		KeyGenerationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rsa_oaep_key_generation_seconds",
				Help:    "time spent generating a key pair",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			}, []string{LabelKeySize}),
		FileEncryptions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rsa_oaep_file_encryptions_total",
				Help: "number of file encryptions success/failed",
			}, []string{LabelStatus}),
		FileDecryptions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rsa_oaep_file_decryptions_total",
				Help: "number of file decryptions success/failed",
			}, []string{LabelStatus}),
		Blocks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rsa_oaep_blocks_total",
				Help: "number of OAEP blocks processed per operation",
			}, []string{LabelOperation}),
	}

	if registerer == nil {
		return m, nil
	}

	for _, c := range []prometheus.Collector{
		m.KeyGenerations,
		m.KeyGenerationAttempts,
		m.KeyGenerationDuration,
		m.FileEncryptions,
		m.FileDecryptions,
		m.Blocks,
	} {
		if err := registerer.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}
	return m, nil
}

// Status maps an operation error to the status label value
func Status(err error) string {
	if err != nil {
		return LabelStatusFail
	}
	return LabelStatusSuccess
}

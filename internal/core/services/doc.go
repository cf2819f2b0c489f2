// Package services contains the core business logic: policy document
// ingestion and retrieval-augmented transfer validation. Services
// depend only on ports; adapters are injected at startup.
package services

// Package domain contains the core business types for the compliance
// engine: documents and chunks flowing through the ingestion pipeline,
// extracted policy rules and sanctions lists, and transfer decisions.
// The domain layer has no dependencies on adapters or infrastructure.
package domain

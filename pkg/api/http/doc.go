// Package http provides the read-only HTTP gateway over the catalog tables.
//
// The server exposes:
//   - A plain text greeting at /
//   - One JSON endpoint per catalog table (/generos, /plataformas, /juegos)
//   - A database health check at /health
//   - Prometheus metrics at /metrics
package http

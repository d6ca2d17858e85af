package hybridauth

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"
)

// Shipment is a tracked shipment row.
type Shipment struct {
	ID               uint       `json:"id"`
	TrackingNumber   string     `json:"trackingNumber"`
	Origin           string     `json:"origin"`
	Destination      string     `json:"destination"`
	Status           string     `json:"status"`
	EstimatedArrival *time.Time `json:"estimatedArrival,omitempty"`
	ActualArrival    *time.Time `json:"actualArrival,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// Order is a customer order row.
type Order struct {
	ID          uint      `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	CustomerID  *int      `json:"customerId,omitempty"`
	TotalAmount float64   `json:"totalAmount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TelemetryReading is a single device metric sample.
type TelemetryReading struct {
	ID          uint      `json:"id"`
	DeviceID    string    `json:"deviceId"`
	MetricName  string    `json:"metricName"`
	MetricValue float64   `json:"metricValue"`
	Timestamp   time.Time `json:"timestamp"`
}

// ShipmentStore lists shipments for the operations dashboard.
type ShipmentStore interface {
	ListShipments() ([]*Shipment, error)
}

// OrderStore lists orders for the operations dashboard.
type OrderStore interface {
	ListOrders() ([]*Order, error)
}

// TelemetryStore records and lists device telemetry.
type TelemetryStore interface {
	ListReadings() ([]*TelemetryReading, error)
	RecordReading(reading *TelemetryReading) error
}

func (s *Server) handleListShipments(w http.ResponseWriter, r *http.Request) {
	shipments, err := s.Shipments.ListShipments()
	if err != nil {
		log.Printf("failed to fetch shipments: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch shipments")
		return
	}
	writeJSON(w, http.StatusOK, shipments)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.Orders.ListOrders()
	if err != nil {
		log.Printf("failed to fetch orders: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

var reportFuncs = template.FuncMap{
	"fmtdate": func(t *time.Time) string {
		if t == nil {
			return "N/A"
		}
		return t.Format("2006-01-02")
	},
	"fmtcustomer": func(id *int) string {
		if id == nil {
			return "N/A"
		}
		return fmt.Sprintf("%d", *id)
	},
}

var shipmentsReportTmpl = template.Must(template.New("shipments-report").Funcs(reportFuncs).Parse(`<!DOCTYPE html>
<html>
<head>
<title>Shipments Report</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #4CAF50; color: white; }
tr:nth-child(even) { background-color: #f2f2f2; }
</style>
</head>
<body>
<h1>Shipments Report</h1>
<p>Generated: {{.Generated}}</p>
<table>
<tr><th>Tracking Number</th><th>Origin</th><th>Destination</th><th>Status</th><th>Estimated Arrival</th><th>Actual Arrival</th></tr>
{{range .Shipments}}<tr><td>{{.TrackingNumber}}</td><td>{{.Origin}}</td><td>{{.Destination}}</td><td>{{.Status}}</td><td>{{fmtdate .EstimatedArrival}}</td><td>{{fmtdate .ActualArrival}}</td></tr>
{{end}}</table>
</body>
</html>
`))

var ordersReportTmpl = template.Must(template.New("orders-report").Funcs(reportFuncs).Parse(`<!DOCTYPE html>
<html>
<head>
<title>Orders Report</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #2196F3; color: white; }
tr:nth-child(even) { background-color: #f2f2f2; }
</style>
</head>
<body>
<h1>Orders Report</h1>
<p>Generated: {{.Generated}}</p>
<table>
<tr><th>Order Number</th><th>Customer ID</th><th>Total Amount</th><th>Status</th><th>Created At</th></tr>
{{range .Orders}}<tr><td>{{.OrderNumber}}</td><td>{{fmtcustomer .CustomerID}}</td><td>${{printf "%.2f" .TotalAmount}}</td><td>{{.Status}}</td><td>{{.CreatedAt.Format "2006-01-02"}}</td></tr>
{{end}}</table>
</body>
</html>
`))

func (s *Server) handleExportShipments(w http.ResponseWriter, r *http.Request) {
	shipments, err := s.Shipments.ListShipments()
	if err != nil {
		log.Printf("failed to export shipments report: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to export shipments report")
		return
	}
	if len(shipments) == 0 {
		writeError(w, http.StatusNotFound, "No shipments found")
		return
	}

	w.Header().Set("Content-Type", "text/html")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="shipments-report-%d.html"`, time.Now().UnixMilli()))
	data := map[string]any{
		"Generated": time.Now().Format(time.RFC1123),
		"Shipments": shipments,
	}
	if err := shipmentsReportTmpl.Execute(w, data); err != nil {
		log.Printf("failed to render shipments report: %v", err)
	}
}

func (s *Server) handleExportOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.Orders.ListOrders()
	if err != nil {
		log.Printf("failed to export orders report: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to export orders report")
		return
	}
	if len(orders) == 0 {
		writeError(w, http.StatusNotFound, "No orders found")
		return
	}

	w.Header().Set("Content-Type", "text/html")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="orders-report-%d.html"`, time.Now().UnixMilli()))
	data := map[string]any{
		"Generated": time.Now().Format(time.RFC1123),
		"Orders":    orders,
	}
	if err := ordersReportTmpl.Execute(w, data); err != nil {
		log.Printf("failed to render orders report: %v", err)
	}
}

func (s *Server) handleGetTelemetry(w http.ResponseWriter, r *http.Request) {
	readings, err := s.Telemetry.ListReadings()
	if err != nil {
		log.Printf("failed to fetch telemetry: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch telemetry data")
		return
	}
	writeJSON(w, http.StatusOK, readings)
}

func (s *Server) handlePostTelemetry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeviceID    string  `json:"deviceId"`
		MetricName  string  `json:"metricName"`
		MetricValue float64 `json:"metricValue"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DeviceID == "" || req.MetricName == "" {
		writeAuthError(w, http.StatusBadRequest, NewAuthError(ErrCodeMissingField, "deviceId and metricName required", ""))
		return
	}

	reading := &TelemetryReading{
		DeviceID:    req.DeviceID,
		MetricName:  req.MetricName,
		MetricValue: req.MetricValue,
	}
	if err := s.Telemetry.RecordReading(reading); err != nil {
		log.Printf("failed to record telemetry: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to record telemetry")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"message": "Telemetry recorded"})
}

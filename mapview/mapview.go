// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package mapview renders listing maps for browsers.
package mapview

import (
	"fmt"
	"html/template"
	"io"

	"github.com/danielhkuo/foodshare/models"
)

// Renderer draws a map with markers
type Renderer interface {
	Render(w io.Writer, m models.MapView) error
	ContentType() string
}

// Leaflet renders a standalone HTML page using the Leaflet JS library and
// OpenStreetMap tiles.
type Leaflet struct {
	tmpl *template.Template
}

func NewLeaflet() *Leaflet {
	return &Leaflet{tmpl: template.Must(template.New("map").Parse(leafletPage))}
}

func (l *Leaflet) ContentType() string {
	return "text/html; charset=utf-8"
}

func (l *Leaflet) Render(w io.Writer, m models.MapView) error {
	if m.Markers == nil {
		m.Markers = []models.Marker{}
	}
	if err := l.tmpl.Execute(w, m); err != nil {
		return fmt.Errorf("failed to render map: %w", err)
	}
	return nil
}

// Marker text is user supplied. It is escaped in the page, then the popup's
// **bold** and <br> markup is restored.
const leafletPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Available Food Items Near You</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>#map { width: 700px; height: 500px; }</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map('map').setView([{{.Center.Lat}}, {{.Center.Lon}}], {{.Zoom}});
L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);
function esc(s) {
  var d = document.createElement('div');
  d.textContent = s;
  return d.innerHTML;
}
var markers = {{.Markers}};
markers.forEach(function (m) {
  var popup = esc(m.popup).replace(/&lt;br&gt;/g, '<br>').replace(/\*\*(.+?)\*\*/g, '<b>$1</b>');
  L.marker([m.lat, m.lon]).bindTooltip(esc(m.label)).bindPopup(popup).addTo(map);
});
</script>
</body>
</html>
`

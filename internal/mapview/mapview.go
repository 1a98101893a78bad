// Package mapview строит описание карты для одной точки справочника.
// Результат не зависит от UI: веб-страница и JSON API отдают одну и ту же структуру.
package mapview

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/shenikar/sunshade_report_system/internal/models"
)

const (
	DefaultZoom   = 17
	MinZoom       = 10
	MaxZoom       = 18
	PopupMaxWidth = 300
	MaxLineLength = 20
)

// Подложка VWorld с зашитым ключом. Резервной подложки нет.
const (
	tileURL  = "http://api.vworld.kr/req/wmts/1.0.0./CCA5DC05-6EDE-3BE5-A2DE-582966148562/Base/{z}/{y}/{x}.png"
	tileName = "VWorldBase"
)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type TileLayer struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	Name        string `json:"name"`
	Overlay     bool   `json:"overlay"`
	Control     bool   `json:"control"`
	MinZoom     int    `json:"min_zoom"`
}

type Icon struct {
	Color  string `json:"color"`
	Prefix string `json:"prefix"`
	Name   string `json:"name"`
}

type Marker struct {
	Position      LatLng `json:"position"`
	Icon          Icon   `json:"icon"`
	PopupHTML     string `json:"popup_html"`
	PopupMaxWidth int    `json:"popup_max_width"`
	TooltipHTML   string `json:"tooltip_html"`
}

type MapView struct {
	Center  LatLng    `json:"center"`
	Zoom    int       `json:"zoom"`
	MinZoom int       `json:"min_zoom"`
	MaxZoom int       `json:"max_zoom"`
	Tiles   TileLayer `json:"tiles"`
	Markers []Marker  `json:"markers"`
}

var popupTemplate = template.Must(template.New("popup").Parse(
	`<table style="width:100%; border-collapse: collapse; border: 2px solid #ddd; border-radius: 5px; background-color: #f9f9f9;">` +
		`<tr>` +
		`<td style="border-right: 1px solid #ddd; border-bottom: 1px solid #ddd; padding: 5px;"><b>관리번호</b></td>` +
		`<td style="border-bottom: 1px solid #ddd; padding: 5px;">{{.ManageNumber}}</td>` +
		`</tr>` +
		`<tr>` +
		`<td style="border-right: 1px solid #ddd; border-bottom: 1px solid #ddd; padding: 5px;"><b>주&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;소</b></td>` +
		`<td style="border-bottom: 1px solid #ddd; padding: 5px;">{{range $i, $line := .Lines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</td>` +
		`</tr>` +
		`</table>`))

// Build центрирует карту на записи и ставит на нее один маркер
func Build(asset models.Asset) (*MapView, error) {
	popup, err := renderPopup(asset)
	if err != nil {
		return nil, err
	}

	center := LatLng{Lat: asset.Latitude, Lng: asset.Longitude}
	return &MapView{
		Center:  center,
		Zoom:    DefaultZoom,
		MinZoom: MinZoom,
		MaxZoom: MaxZoom,
		Tiles: TileLayer{
			URL:         tileURL,
			Attribution: tileName,
			Name:        tileName,
			Overlay:     true,
			Control:     false,
			MinZoom:     MinZoom,
		},
		Markers: []Marker{{
			Position:      center,
			Icon:          Icon{Color: "blue", Prefix: "fa", Name: "umbrella"},
			PopupHTML:     popup,
			PopupMaxWidth: PopupMaxWidth,
			TooltipHTML:   fmt.Sprintf("<b>관리번호:</b> %d<br>", asset.ManageNumber),
		}},
	}, nil
}

func renderPopup(asset models.Asset) (string, error) {
	var sb strings.Builder
	err := popupTemplate.Execute(&sb, struct {
		ManageNumber int
		Lines        []string
	}{
		ManageNumber: asset.ManageNumber,
		Lines:        WrapLines(asset.SiteName, MaxLineLength),
	})
	if err != nil {
		return "", fmt.Errorf("%w: popup for asset %d: %w", models.ErrRender, asset.ManageNumber, err)
	}
	return sb.String(), nil
}

// WrapLines разбивает текст по словам так, чтобы длина строки не превышала maxLineLength.
// Слово никогда не разрывается; каждое слово учитывается вместе с одним пробелом после него.
func WrapLines(text string, maxLineLength int) []string {
	var (
		lines   []string
		current []string
		lineLen int
	)
	for _, word := range strings.Fields(text) {
		wordLen := len([]rune(word))
		if lineLen > 0 && lineLen+wordLen > maxLineLength {
			lines = append(lines, strings.Join(current, " "))
			current = current[:0]
			lineLen = 0
		}
		current = append(current, word)
		lineLen += wordLen + 1
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}

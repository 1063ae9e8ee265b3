package handlers

import (
	"html/template"
	"net/http"
	"sort"

	"github.com/sirupsen/logrus"

	"trendlens/internal/domain/content"
)

// DashboardHandler serves the minimal HTML search dashboard.
type DashboardHandler struct {
	video content.VideoCollaborator
	log   *logrus.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(video content.VideoCollaborator, log *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{
		video: video,
		log:   log,
	}
}

type dashboardRow struct {
	Rank      int
	Title     string
	Author    string
	ViewCount int64
	URL       string
}

type dashboardData struct {
	Query      string
	Error      string
	TotalViews int64
	Rows       []dashboardRow
}

// Render serves the dashboard. With a query it searches the video
// platform and shows the top ten results by views plus the total view
// count.
func (h *DashboardHandler) Render(w http.ResponseWriter, r *http.Request) {
	data := dashboardData{Query: r.URL.Query().Get("query")}

	if data.Query != "" {
		records, err := h.video.Search(r.Context(), data.Query, 50)
		if err != nil {
			h.log.WithError(err).Warn("dashboard search failed")
			data.Error = "검색에 실패했습니다. 잠시 후 다시 시도해 주세요."
		} else {
			data.Rows, data.TotalViews = dashboardRows(records)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, data); err != nil {
		h.log.WithError(err).Warn("dashboard render failed")
	}
}

func dashboardRows(records []content.ContentRecord) ([]dashboardRow, int64) {
	rows := make([]dashboardRow, 0, len(records))
	var total int64

	for _, rec := range records {
		row := dashboardRow{
			Title: rec.Title,
			URL:   rec.URL,
		}
		if rec.Author != nil {
			row.Author = *rec.Author
		}
		if rec.ViewCount != nil {
			row.ViewCount = *rec.ViewCount
			total += *rec.ViewCount
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ViewCount > rows[j].ViewCount
	})
	if len(rows) > 10 {
		rows = rows[:10]
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, total
}

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<title>TrendLens</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 0.5rem; text-align: left; }
th { background: #f5f5f5; }
.error { color: #b00; }
</style>
</head>
<body>
<h1>TrendLens</h1>
<form method="get" action="/web">
<input type="text" name="query" value="{{.Query}}" placeholder="키워드 검색">
<button type="submit">검색</button>
</form>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{if .Rows}}
<p>총 조회수: {{.TotalViews}}</p>
<table>
<tr><th>#</th><th>제목</th><th>채널</th><th>조회수</th></tr>
{{range $row := .Rows}}
<tr>
<td>{{$row.Rank}}</td>
<td><a href="{{$row.URL}}">{{$row.Title}}</a></td>
<td>{{$row.Author}}</td>
<td>{{$row.ViewCount}}</td>
</tr>
{{end}}
</table>
{{end}}
</body>
</html>
`))

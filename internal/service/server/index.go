package server

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/vertextoedge/bbb-archive/internal/domain"
	"github.com/vertextoedge/bbb-archive/internal/service/library"
	"go.uber.org/zap"
)

// sessionView is one downloaded session row on the index page
type sessionView struct {
	Name     string
	Href     string
	Complete bool
}

// indexData is the template payload for the index page
type indexData struct {
	Message  string
	Sessions []sessionView
	Tasks    []*domain.DownloadTask
}

// handleIndex renders the session list (GET) and accepts download-form
// submissions (POST).
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.renderIndex(w, "Enter a session URL and a name to download it.")
	case http.MethodPost:
		s.handleDownloadForm(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleDownloadForm runs a download for the submitted URL. The download
// runs inside the request; the page comes back when it finishes, which
// matches the deliberately sequential pipeline.
func (s *Server) handleDownloadForm(w http.ResponseWriter, r *http.Request) {
	url := strings.TrimSpace(r.FormValue("meeting-url"))
	name := strings.ReplaceAll(strings.TrimSpace(r.FormValue("meeting-name")), " ", "_")

	if url == "" {
		s.renderIndex(w, "A session URL is required.")
		return
	}

	task := domain.NewDownloadTask(url, name)
	if s.store != nil {
		if err := s.store.CreateTask(task); err != nil {
			s.logger.Warn("failed to record download task", zap.Error(err))
		}
		if err := s.store.UpdateTaskStatus(task.ID, domain.TaskStatusRunning, ""); err != nil {
			s.logger.Warn("failed to update download task", zap.Error(err))
		}
	}

	ref, err := s.downloader.Download(r.Context(), url, name)
	if err != nil {
		s.logger.Error("download failed", zap.String("url", url), zap.Error(err))
		if s.store != nil {
			if uerr := s.store.UpdateTaskStatus(task.ID, domain.TaskStatusFailed, err.Error()); uerr != nil {
				s.logger.Warn("failed to update download task", zap.Error(uerr))
			}
		}
		s.renderIndex(w, "Download failed: "+err.Error())
		return
	}

	if s.store != nil {
		if uerr := s.store.AssignTaskSession(task.ID, ref.SessionID); uerr != nil {
			s.logger.Warn("failed to update download task", zap.Error(uerr))
		}
		if uerr := s.store.UpdateTaskStatus(task.ID, domain.TaskStatusCompleted, ""); uerr != nil {
			s.logger.Warn("failed to update download task", zap.Error(uerr))
		}
	}
	s.renderIndex(w, "Session "+ref.SessionID+" downloaded.")
}

// renderIndex builds the session list and writes the index page.
func (s *Server) renderIndex(w http.ResponseWriter, message string) {
	sessions, err := library.List(s.config.MeetingsDir)
	if err != nil {
		s.logger.Error("failed to list sessions", zap.Error(err))
		http.Error(w, "unable to read meetings folder", http.StatusInternalServerError)
		return
	}

	data := indexData{Message: message}
	for _, sess := range sessions {
		data.Sessions = append(data.Sessions, sessionView{
			Name:     sess.Name,
			Href:     meetingsPrefix + sess.Name + "/" + sess.PlayerPath,
			Complete: sess.Complete,
		})
	}

	if s.store != nil {
		tasks, err := s.store.RecentTasks(20)
		if err != nil {
			s.logger.Warn("failed to load task history", zap.Error(err))
		} else {
			data.Tasks = tasks
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render index page", zap.Error(err))
	}
}

var indexTpl = template.Must(template.New("index").Parse(indexPage))

const indexPage = `<!doctype html>
<html lang="en">
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>bbb-archive</title>
<style>
body{font-family:system-ui,-apple-system,Segoe UI,Roboto;max-width:900px;margin:0 auto;padding:1rem}
h1{font-size:1.4rem}
ul{list-style:none;padding:0;margin:0}
li{padding:6px;border-radius:6px}
li:hover{background:#f6f6f6}
form{border:1px solid #ddd;border-radius:8px;padding:12px;margin-bottom:1rem}
input[type=text],input[type=url]{width:100%;padding:6px;margin:4px 0 10px;box-sizing:border-box}
.msg{padding:8px;background:#eef5ff;border-radius:6px;margin-bottom:1rem}
.partial{color:#a60}
table{border-collapse:collapse;width:100%}
td,th{text-align:left;padding:4px 8px;border-bottom:1px solid #eee}
.muted,small{color:#666}
</style>
<h1>bbb-archive</h1>

{{if .Message}}<div class="msg">{{.Message}}</div>{{end}}

<form method="post" action="/">
  <label for="meeting-url">Session URL</label>
  <input type="url" id="meeting-url" name="meeting-url" required
         placeholder="https://host/playback/presentation/2.3/&lt;session-id&gt;" />
  <label for="meeting-name">Name (optional)</label>
  <input type="text" id="meeting-name" name="meeting-name" placeholder="weekly-standup" />
  <button type="submit">Download</button>
</form>

<h2>Downloaded sessions</h2>
{{if .Sessions}}
<ul>
{{range .Sessions}}
  <li><a href="{{.Href}}">{{.Name}}</a>{{if not .Complete}} <small class="partial">(incomplete)</small>{{end}}</li>
{{end}}
</ul>
{{else}}
<p class="muted">No sessions downloaded yet.</p>
{{end}}

{{if .Tasks}}
<h2>Recent downloads</h2>
<table>
  <tr><th>URL</th><th>Name</th><th>Status</th></tr>
  {{range .Tasks}}
  <tr><td><small>{{.URL}}</small></td><td>{{.Name}}</td><td>{{.Status}}{{if .Error}} <small class="muted">{{.Error}}</small>{{end}}</td></tr>
  {{end}}
</table>
{{end}}
</html>
`

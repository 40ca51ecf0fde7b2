package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"advisor-api/internal/logger"
	"advisor-api/internal/model"
)

// Notifier delivers the "roadmap ready" notification once scoring
// completes. Delivery is best-effort: callers dispatch it off the
// critical path and failures are logged, never propagated.
type Notifier interface {
	RoadmapReady(ctx context.Context, submission *model.Submission, roadmap *model.Roadmap) error
}

// NewRelayNotifier builds a notifier that POSTs a rendered HTML email
// payload to a mail relay endpoint. An empty URL disables delivery.
func NewRelayNotifier(url, from, to string, log *logger.Logger) Notifier {
	if url == "" {
		return nopNotifier{}
	}
	return &relayNotifier{
		url:  url,
		from: from,
		to:   to,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		tmpl: template.Must(template.New("roadmap").Parse(roadmapEmailTemplate)),
		log:  log,
	}
}

type nopNotifier struct{}

func (nopNotifier) RoadmapReady(ctx context.Context, submission *model.Submission, roadmap *model.Roadmap) error {
	return nil
}

type relayNotifier struct {
	url    string
	from   string
	to     string
	client *http.Client
	tmpl   *template.Template
	log    *logger.Logger
}

type mailPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

func (n *relayNotifier) RoadmapReady(ctx context.Context, submission *model.Submission, roadmap *model.Roadmap) error {
	var body bytes.Buffer
	data := struct {
		Submission *model.Submission
		Roadmap    *model.Roadmap
	}{submission, roadmap}
	if err := n.tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render roadmap email: %w", err)
	}

	to := n.to
	if to == "" {
		to = submission.Respondent.Email
	}
	payload, err := json.Marshal(mailPayload{
		From:    n.from,
		To:      to,
		Subject: fmt.Sprintf("Your recommendation roadmap (%s)", submission.ID),
		HTML:    body.String(),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mail relay returned status %d", resp.StatusCode)
	}
	return nil
}

// roadmapEmailTemplate renders the same phase groups, sub-category
// ordering and expanded/collapsed split as the API payload.
const roadmapEmailTemplate = `<html>
<body>
<h1>Recommendation roadmap</h1>
<p>Hi {{.Submission.Respondent.Name}}, here is the roadmap built from your answers.</p>
{{range .Roadmap.Phases}}
<h2>Phase {{.Phase}}</h2>
{{range .Groups}}
<h3>{{.SubCategory}}</h3>
<ul>
{{range .Offerings}}
{{if .Expanded}}
<li>
<strong>{{.Offering.Title}}</strong> &mdash; {{.Relevance}}% match
{{if .Offering.Rationale}}<p>{{.Offering.Rationale}}</p>{{end}}
{{if .Offering.Inclusions}}<p><em>Includes:</em> {{.Offering.Inclusions}}</p>{{end}}
{{if .Offering.Deliverables}}<p><em>Deliverables:</em> {{.Offering.Deliverables}}</p>{{end}}
{{if .Offering.DeliveryMethod}}<p><em>Delivery:</em> {{.Offering.DeliveryMethod}}</p>{{end}}
</li>
{{else}}
<li>{{.Offering.Title}} &mdash; {{.Relevance}}% match</li>
{{end}}
{{end}}
</ul>
{{end}}
{{end}}
</body>
</html>`

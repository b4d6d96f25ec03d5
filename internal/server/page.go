// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// page.go - embedded browser form served at /
package server

import (
	"html/template"
	"log"
	"net/http"

	"github.com/jeranaias/pathforge/internal/plan"
	"github.com/jeranaias/pathforge/internal/render"
)

// indexData feeds the form template. Defaults mirror what the API assumes
// for omitted fields.
type indexData struct {
	Themes          []string
	Levels          []string
	DefaultTopic    string
	DefaultLevel    string
	DefaultDuration string
	DefaultTheme    string
}

// handleIndex handles GET /: the single-page form that posts to the API and
// shows the returned PNG inline.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	levels := make([]string, 0, 3)
	for _, l := range plan.Levels() {
		levels = append(levels, l.String())
	}

	data := indexData{
		Themes:          render.ThemeNames(),
		Levels:          levels,
		DefaultTopic:    "Machine Learning",
		DefaultLevel:    plan.LevelBeginner.String(),
		DefaultDuration: "3 months",
		DefaultTheme:    s.config().Render.Theme,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		log.Printf("PAGE_ERROR | error=%v", err)
	}
}

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Learning Roadmap Generator</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif;
         max-width: 760px; margin: 2rem auto; padding: 0 1rem; color: #222; }
  h1 { margin-bottom: 0.2rem; }
  .tagline { color: #666; margin-top: 0; }
  form { display: grid; grid-template-columns: 8rem 1fr; gap: 0.6rem 1rem;
         align-items: center; margin: 1.5rem 0; }
  label { font-weight: 600; }
  input, select { padding: 0.45rem; border: 1px solid #bbb; border-radius: 6px;
                  font-size: 1rem; }
  button { grid-column: 2; justify-self: start; padding: 0.5rem 1.4rem;
           font-size: 1rem; border: none; border-radius: 6px;
           background: #6a1b9a; color: #fff; cursor: pointer; }
  button:disabled { background: #aaa; cursor: wait; }
  #error { display: none; background: #fdecea; border: 1px solid #f5c6cb;
           color: #721c24; padding: 0.7rem 1rem; border-radius: 6px; }
  #fallback { display: none; background: #fff3cd; border: 1px solid #ffeeba;
              color: #856404; padding: 0.7rem 1rem; border-radius: 6px; }
  #result { display: none; }
  #chart { max-width: 100%; border: 1px solid #ddd; border-radius: 6px;
           margin-top: 1rem; }
  #download { display: inline-block; margin-top: 0.5rem; }
</style>
</head>
<body>
<h1>Learning Roadmap Generator</h1>
<p class="tagline">Dynamic roadmaps based on duration and level.</p>

<form id="form">
  <label for="topic">Topic</label>
  <input id="topic" type="text" value="{{.DefaultTopic}}" required>

  <label for="level">Level</label>
  <select id="level">
    {{range .Levels}}<option value="{{.}}"{{if eq . $.DefaultLevel}} selected{{end}}>{{.}}</option>
    {{end}}</select>

  <label for="duration">Duration</label>
  <input id="duration" type="text" value="{{.DefaultDuration}}">

  <label for="theme">Theme</label>
  <select id="theme">
    {{range .Themes}}<option value="{{.}}"{{if eq . $.DefaultTheme}} selected{{end}}>{{.}}</option>
    {{end}}</select>

  <button id="go" type="submit">Generate Roadmap</button>
</form>

<div id="error"></div>
<div id="fallback">The model was unavailable; this is the built-in fallback roadmap.</div>

<div id="result">
  <h2 id="heading"></h2>
  <ol id="steps"></ol>
  <img id="chart" alt="roadmap flowchart">
  <a id="download" download="roadmap.png">Download PNG</a>
</div>

<script>
document.getElementById('form').addEventListener('submit', async function (event) {
  event.preventDefault();

  var btn = document.getElementById('go');
  var errorBox = document.getElementById('error');
  var fallbackBox = document.getElementById('fallback');
  var result = document.getElementById('result');

  btn.disabled = true;
  errorBox.style.display = 'none';
  fallbackBox.style.display = 'none';
  result.style.display = 'none';

  try {
    var resp = await fetch('/api/roadmap', {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify({
        topic: document.getElementById('topic').value,
        level: document.getElementById('level').value,
        duration: document.getElementById('duration').value,
        theme: document.getElementById('theme').value
      })
    });
    var data = await resp.json();
    if (!resp.ok) {
      throw new Error(data.error ? data.error.message : resp.statusText);
    }

    document.getElementById('heading').textContent =
      data.topic + ' (' + data.level + ', ' + data.duration + ')';

    var steps = document.getElementById('steps');
    steps.textContent = '';
    data.steps.forEach(function (step) {
      var li = document.createElement('li');
      li.textContent = step;
      steps.appendChild(li);
    });

    var src = 'data:image/png;base64,' + data.png;
    document.getElementById('chart').src = src;
    document.getElementById('download').href = src;

    if (data.fallback) {
      fallbackBox.style.display = 'block';
    }
    result.style.display = 'block';
  } catch (err) {
    errorBox.textContent = err.message;
    errorBox.style.display = 'block';
  } finally {
    btn.disabled = false;
  }
});
</script>
</body>
</html>
`

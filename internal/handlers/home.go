package handlers

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

var homeTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.System}}</title>
<style>
body { font-family: Georgia, serif; max-width: 640px; margin: 3rem auto; padding: 0 1rem; color: #2b2438; }
h1 { font-weight: normal; }
form { display: grid; gap: .75rem; max-width: 320px; }
input[type=text], input[type=email] { padding: .5rem; }
button { padding: .5rem 1rem; cursor: pointer; }
#card { margin-top: 2rem; white-space: pre-wrap; }
</style>
</head>
<body>
<h1>{{.System}}</h1>
<p>One card a day, drawn for you. {{.CardCount}} cards in the deck.</p>
<form id="subscribe">
  <input type="text" name="firstName" placeholder="First name" required>
  <input type="email" name="email" placeholder="Email" required>
  <label><input type="checkbox" name="consent" required> I agree to receive the daily email.</label>
  <button type="submit">Draw my card</button>
</form>
<div id="card"></div>
<script>
const tz = Intl.DateTimeFormat().resolvedOptions().timeZone;
document.getElementById("subscribe").addEventListener("submit", async (e) => {
  e.preventDefault();
  const f = new FormData(e.target);
  const res = await fetch("/api/subscribe", {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify({firstName: f.get("firstName"), email: f.get("email"), consent: f.get("consent") === "on"})
  });
  const out = document.getElementById("card");
  if (!res.ok) { out.textContent = (await res.json()).error; return; }
  const draw = await fetch("/api/draw", {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify({timezone: tz})
  });
  if (!draw.ok) { out.textContent = "Unable to draw a card."; return; }
  const data = await draw.json();
  out.textContent = data.card.title + "\n\n" + data.card.description;
});
</script>
</body>
</html>
`))

// Home renders the landing page shell; the draw flow runs client-side
// against the JSON API.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.jsonError(w, "Not found.", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := map[string]any{
		"System":    h.catalog.System(),
		"CardCount": h.catalog.Size(),
	}
	if err := homeTemplate.Execute(w, data); err != nil {
		h.logger.Error("template render failed", zap.Error(err))
	}
}

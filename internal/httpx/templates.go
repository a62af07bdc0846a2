package httpx

import "html/template"

var loginTpl = template.Must(template.New("login").Parse(`
<!doctype html><html><head>
<meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1">
<title>Campaign Insight - Login</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Inter,Arial;background:#0b1020;color:#e8ecff;margin:0;padding:40px}
.card{background:#111837;border:1px solid #203063;border-radius:14px;padding:24px;max-width:380px;margin:60px auto}
h1{font-size:20px;margin:0 0 16px 0}
input{width:100%;box-sizing:border-box;margin:6px 0;padding:8px;border-radius:8px;border:1px solid #203063;background:#0b1020;color:#e8ecff}
button{background:#7aa2ff;color:#04102a;border:none;padding:8px 14px;border-radius:10px;cursor:pointer;margin-top:10px}
.err{color:#ff8a8a;margin-top:10px}
</style>
</head><body>
<div class="card">
<h1>Campaign Insight - Secure Login</h1>
<form method="POST" action="/login">
<input name="email" type="email" placeholder="Email" required>
<input name="secret" type="password" placeholder="Password" required>
<button type="submit">Login</button>
</form>
{{if .Error}}<p class="err">{{.Error}}</p>{{end}}
</div>
</body></html>
`))

var dashboardTpl = template.Must(template.New("dashboard").Parse(`
<!doctype html><html><head>
<meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Tenant}} - Campaign Insight</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Inter,Arial;background:#0b1020;color:#e8ecff;margin:0;padding:20px}
.card{background:#111837;border:1px solid #203063;border-radius:14px;padding:16px;margin:12px 0}
h1{margin:0 0 4px 0} .muted{color:#9aa7cf} table{width:100%;border-collapse:collapse}
th,td{border-bottom:1px solid #22305f;padding:8px;text-align:left}
.kpis{display:flex;gap:12px;flex-wrap:wrap}
.kpi{background:#161d40;border:1px solid #203063;border-radius:12px;padding:14px 20px;min-width:130px;text-align:center}
.kpi .t{color:#9aa7cf;font-size:13px}.kpi .v{font-size:24px;font-weight:bold}
button,select,input{background:#0b1020;color:#e8ecff;border:1px solid #203063;border-radius:8px;padding:6px 10px}
button{background:#7aa2ff;color:#04102a;border:none;cursor:pointer}
.warn{color:#ffd27a}
a{color:#7aa2ff}
</style>
</head><body>
<div style="display:flex;justify-content:space-between;align-items:center">
<div><h1>{{.Tenant}} - Marketing Intelligence Dashboard</h1>
<p class="muted">{{.Email}} ({{.Role}}){{if .TeamLead}} &middot; Team Lead: {{.TeamLead}}{{end}}</p></div>
<form method="POST" action="/logout"><button type="submit">Logout</button></form>
</div>

{{if .DataError}}
<div class="card"><p class="warn">Campaign data is currently unavailable. Please try again later.</p></div>
{{else}}
<div class="card">
<form method="GET" action="/">
<label>Channel
<select name="channel">
<option{{if eq .Filter.Channel "All"}} selected{{end}}>All</option>
{{range .Channels}}<option{{if eq . $.Filter.Channel}} selected{{end}}>{{.}}</option>{{end}}
</select></label>
<label>From <input type="date" name="from" value="{{.Filter.From}}"></label>
<label>To <input type="date" name="to" value="{{.Filter.To}}"></label>
<button type="submit">Apply</button>
<a style="margin-left:12px" href="/api/report?channel={{.Filter.Channel}}&from={{.Filter.From}}&to={{.Filter.To}}">Download PDF report</a>
</form>
</div>

<div class="card">
<h3>Funnel Overview</h3>
<div class="kpis">
<div class="kpi"><div class="t">Impressions</div><div class="v">{{.Totals.Impressions}}</div></div>
<div class="kpi"><div class="t">Clicks</div><div class="v">{{.Totals.Clicks}}</div></div>
<div class="kpi"><div class="t">Conversions</div><div class="v">{{.Totals.Conversions}}</div></div>
<div class="kpi"><div class="t">Spend</div><div class="v">{{printf "%.2f" .Totals.Spend}}</div></div>
<div class="kpi"><div class="t">Revenue</div><div class="v">{{printf "%.2f" .Totals.Revenue}}</div></div>
<div class="kpi"><div class="t">Conv. Rate</div><div class="v">{{printf "%.2f" .Totals.ConversionRate}}%</div></div>
<div class="kpi"><div class="t">ROI</div><div class="v">{{printf "%.2f" .Totals.ROI}}%</div></div>
</div>
</div>

<div class="card">
<h3>Channel Breakdown</h3>
<table><thead><tr><th>Channel</th><th>Impressions</th><th>Clicks</th><th>Conversions</th><th>Spend</th><th>Revenue</th><th>ROI</th></tr></thead><tbody>
{{range .ByChannel}}<tr><td>{{.Channel}}</td><td>{{.Impressions}}</td><td>{{.Clicks}}</td><td>{{.Conversions}}</td><td>{{printf "%.2f" .Spend}}</td><td>{{printf "%.2f" .Revenue}}</td><td>{{printf "%.2f" .ROI}}%</td></tr>{{end}}
</tbody></table>
<p class="muted">Chart data: <a href="/api/charts?channel={{.Filter.Channel}}&from={{.Filter.From}}&to={{.Filter.To}}">/api/charts</a></p>
</div>

<div class="card">
<h3>AI Revenue Forecast</h3>
{{if not .ForecastAllowed}}
<p class="warn">Only Admin can access the revenue forecast.</p>
{{else if not .ForecastAvailable}}
<p class="warn">Forecast unavailable: the model artifact could not be loaded.</p>
{{else}}
<form method="POST" action="/forecast">
<input type="hidden" name="channel" value="{{.Filter.Channel}}">
<input type="hidden" name="from" value="{{.Filter.From}}">
<input type="hidden" name="to" value="{{.Filter.To}}">
<label>Expected Impressions <input type="number" name="impressions" value="10000" min="1"></label>
<label>Expected Clicks <input type="number" name="clicks" value="500" min="1"></label>
<label>Expected Spend <input type="number" name="spend" value="2000" min="1"></label>
<button type="submit">Predict Revenue</button>
</form>
{{if .Forecast}}
<div class="kpis" style="margin-top:12px">
<div class="kpi"><div class="t">Predicted Revenue</div><div class="v">{{printf "%.0f" .Forecast.PredictedRevenue}}</div></div>
<div class="kpi"><div class="t">Predicted ROI</div><div class="v">{{printf "%.2f" .Forecast.PredictedROI}}%</div></div>
</div>
{{end}}
{{if .ForecastError}}<p class="warn">{{.ForecastError}}</p>{{end}}
{{end}}
</div>
{{end}}

</body></html>
`))

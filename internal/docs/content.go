package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with incidentdesk",
		Content: topicQuickstart,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "Config file schema, fields, and defaults",
		Content: topicConfig,
	},
	{
		Name:    "workflow",
		Title:   "Incident Workflow",
		Summary: "The 8 steps, scenarios, pacing, and exported runs",
		Content: topicWorkflow,
	},
	{
		Name:    "fixtures",
		Title:   "Fixtures",
		Summary: "The JSON documents behind every page and how they are checked",
		Content: topicFixtures,
	},
	{
		Name:    "server",
		Title:   "Web Server",
		Summary: "Routes, workflow sessions, and the JSON API",
		Content: topicServer,
	},
	{
		Name:    "metrics",
		Title:   "Synthetic Metrics",
		Summary: "Generating telemetry CSVs and the SLO burn-rate view",
		Content: topicMetrics,
	},
}

const topicQuickstart = `Quick Start
===========

1. Initialize a project (optional; everything works from the embedded
   sample data without one):

    cd your-project
    incidentdesk init

   This creates .incidentdesk/config.yaml and copies the sample fixtures
   into .incidentdesk/data/.

2. Serve the site:

    incidentdesk serve

   and open http://127.0.0.1:8080/.

3. Play the incident workflow in the terminal:

    incidentdesk workflow play
    incidentdesk workflow play --scenario dns --out runs/dns-1

4. Step through it interactively:

    incidentdesk workflow guided

CLI Commands
------------

  incidentdesk init                        Scaffold .incidentdesk/
  incidentdesk serve                       Serve every page and the workflow
  incidentdesk workflow play               Auto-play the workflow
  incidentdesk workflow play --dry-run     Print the step plan and pacing
  incidentdesk workflow guided             Interactive stepper
  incidentdesk workflow show <n>           Print one step's artifact
  incidentdesk workflow steps              List the 8 steps
  incidentdesk workflow status <dir>       Summarize an exported run
  incidentdesk incidents list|show|ticket|email
  incidentdesk rca list|show
  incidentdesk runbooks list|show|update
  incidentdesk status [--update]
  incidentdesk security
  incidentdesk fixtures check              Validate fixtures against the schema
  incidentdesk metrics generate|slo
  incidentdesk docs [topic]

Global flags: --config, --data, --data-url, --log-level, --timezone,
--format text|json. Each also reads INCIDENTDESK_<NAME> from the
environment (INCIDENTDESK_DATA, INCIDENTDESK_LOG_LEVEL, ...).
`

const topicConfig = `Configuration Reference
=======================

Configuration lives in .incidentdesk/config.yaml, found by walking up
from the working directory. It is optional; without it the defaults
below apply. Command-line flags override file values.

Top-level fields
----------------

  name        string    Required. Project name.
  data-dir    string    Directory holding the fixture JSON files.
                        Relative paths resolve against the project root.
  data-url    string    Base URL serving the fixture files (http/https).
                        Cannot be combined with data-dir.
  listen      string    Address for 'serve' (default: 127.0.0.1:8080).
  log-level   string    debug, info, warn, or error (default: info).
  timezone    string    IANA zone for fixture timestamps (default: local).
  workflow    object    See below.

With neither data-dir nor data-url set, the sample fixtures built into
the binary are used.

workflow
--------

  scenario       string   random, network, deploy, dns, cert, or db
                          (default: random).
  first-delay    duration Wait after step 1 before advancing (default: 900ms).
  step-delay     duration Wait after any other step (default: 950ms).
  slow-steps     list     Per-step overrides: {step: <name>, delay: <duration>}.
                          Default: Data Collection 1.1s, Runbook 1.2s.
                          An empty list removes the overrides. The first and
                          last steps cannot be listed.
  artifacts-dir  string   Default --out directory for 'workflow play'.

Example
-------

    name: payments-demo
    timezone: America/New_York
    workflow:
      scenario: deploy
      step-delay: 2s
      slow-steps:
        - step: Runbook
          delay: 4s
      artifacts-dir: .incidentdesk/runs
`

const topicWorkflow = `Incident Workflow
=================

A run walks one synthetic scenario through 8 fixed steps:

  1. Alert              Signal detected and validated
  2. Data Collection    Metrics, logs, traces captured
  3. Incident           Severity, scope, and ownership set
  4. Ticketing          Work item created + tasks assigned
  5. Runbook            Standard mitigation applied
  6. RCA                Cause + contributing factors documented
  7. Ticket Close       Validation complete + closure notes
  8. Executive Summary  Business-facing summary generated

Each step produces an artifact (a short document) stamped with the time
the step was entered.

Scenarios
---------

A scenario is created when a run starts, or on the first step jump from
idle. Categories: network, deploy, dns, cert, db; "random" picks one.
The incident (INC-####), ticket (CHG-######) and alert (ALRT-#####) ids,
the affected service and the region are drawn at random. Selecting a
category only affects the next scenario.

Controls
--------

  run      Start auto-play with a fresh scenario. Ignored while playing.
  next     Advance one step. Ignored on the last step.
  step N   Jump to step N (clamped to 1..8). Auto-play continues from
           there; jumping to the last step stops it.
  reset    Stop and return to idle; the scenario is discarded.

Auto-play waits 900ms after step 1, 1.1s after Data Collection, 1.2s
after Runbook and 950ms after every other step: about 7 seconds in all.

In 'workflow guided' the keys are r, n or space, x, 1-8, s (cycle the
scenario category) and q. When stdin is not a terminal, or with --plain,
the same controls are read as lines: run, next, reset, step N,
scenario KEY, show, quit.

Exported runs
-------------

'workflow play --out DIR' writes:

  DIR/run.json                    Run id, scenario, status, last step
  DIR/steps/step-N-<name>.txt     Each step's artifact
  DIR/timing.json                 Time spent on each step

Ctrl-C stops the run, resets the workflow and records it as interrupted.
'workflow status DIR' prints the step map of an exported run.
`

const topicFixtures = `Fixtures
========

Every page except the workflow is rendered from JSON fixtures:

  incidents.json            Incident list and detail pages
  rca.json                  Root cause analyses
  runbooks.json             Runbooks
  status.json               Status page banner, services, updates
  security-metrics.json     Security KPIs
  security-threats.json     Threat table
  security-decisions.json   Decision timeline

Fixtures are read on every request from the data directory, the data
URL (with a cache-busting query and Cache-Control: no-store), or the
copies embedded in the binary.

All fields are optional. Missing values render as "—". Metric values may
be numbers or strings. The three security documents load together: if
any one fails, the whole dashboard shows its placeholders.

'incidentdesk fixtures check' validates every document against the
built-in schema and lists each problem with its location.
`

const topicServer = `Web Server
==========

'incidentdesk serve' serves:

  /                         Index
  /incidents                Incident list
  /incident?id=ID           Incident detail (404 card when unknown)
  /incident/ticket?id=ID    Ticket markdown download
  /incident/email?id=ID     Email update text
  /rca?i=N                  RCA list with item N selected
  /runbooks?q=QUERY&id=ID   Runbook search and detail
  /runbooks/update?id=ID    Stakeholder update text
  /status                   Status page
  /status/update            Customer update text
  /security?flow=KEY        Security dashboard, optional flow stage
  /workflow                 Workflow stepper

Workflow controls are form posts: /workflow/run, /workflow/next,
/workflow/reset, /workflow/step/N (1-8) and /workflow/scenario.
Each browser gets its own workflow, keyed by a session cookie. While
auto-play runs the page refreshes itself every second.

JSON API
--------

  GET  /api/workflow                 Current view
  POST /api/workflow/run|next|reset  Apply a control, return the view
  POST /api/workflow/step?n=N        Jump to step N
  POST /api/workflow/scenario?key=K  Select the next scenario category

A fixture that fails to load answers 502 on pages that depend on it
alone; the failure is logged.
`

const topicMetrics = `Synthetic Metrics
=================

'incidentdesk metrics generate' writes per-minute telemetry for one
service in several regions:

  traffic.csv     ts, service, region, rps
  errors.csv      ts, service, region, error_rate, errors_per_min
  latency.csv     ts, service, region, p50_ms, p95_ms, p99_ms
  incidents.csv   the injected incident window

Traffic follows a daily cycle (low at midnight, peak at midday). One
incident (default: day 3 at 09:00, 90 minutes) raises traffic by 35%,
adds 2% to the error rate and multiplies latency (p50 x1.6, p95 x2.0,
p99 x2.4). Regions carry a latency bias: us-east 1.00, us-west 1.10,
eu-west 1.18. Output is deterministic for a given --seed.

Flags: --out (default: data), --minutes (default: 10080, seven days),
--seed (default: 42), --service, --regions, --incident-start,
--incident-duration.

'incidentdesk metrics slo --dir data' sums traffic and errors across
regions and writes slo.csv with requests/min, error rate, availability
and the burn rate: the mean error rate over the trailing --window
minutes (default: 60) divided by the error budget 1 - --objective
(default: 0.999). The burn rate is 0 until the window is full.
`

package config

// SampleConfig is written by "textlens config init"
const SampleConfig = `# TextLens configuration
version: "1.0"

# Where the client sends /api/ai/{kind} requests
service:
  endpoint: "http://localhost:5000"
  timeout: 0s # 0 waits as long as the service does

output:
  default_format: "text" # text|json|markdown|html|csv
  color_mode: "auto"     # auto|always|never
  verbose: false
  no_emoji: false
  timestamp_format: "1/2/06, 3:04 PM"

log:
  level: "info"
  format: "text"
  file: "" # e.g. ~/.cache/textlens/textlens.log
  max_size_mb: 10
  max_backups: 10
  max_age_days: 30
  compress: true

# textlens serve
proxy:
  addr: ":5000"
  backend_url: "http://localhost:8080"
  timeout: 30s
  cors_origins: ["*"]

# textlens backend
backend:
  addr: ":8080"
  provider: "ollama"     # openai or ollama
  base_url: "http://localhost:11434/v1"
  api_key: ""
  model: "gemma3:4b"
  temperature: 0.7
  timeout: 2m
`

package config

// SampleConfig returns a fully documented configuration file
func SampleConfig() string {
	return `# phishscan configuration
#
# Search order (first wins): ./.phishscan.yaml, ~/.config/phishscan/config.yaml,
# /etc/phishscan/config.yaml. PHISHSCAN_* environment variables override
# file values; a .env file in the working directory is read as well.

version: "1.0"

analysis:
  # mock | http | flask | huggingface | ollama
  provider: mock
  # Where messages are sent. For ollama this is the server base URL.
  endpoint: http://localhost:5000/api/analyze
  # true skips the network and returns simulated verdicts. Only valid with
  # provider: mock; choosing any other provider is enough to use it.
  use_mock: false
  # Bound on a single analysis request
  timeout: 30s
  # Bearer token for hosted providers (prefer PHISHSCAN_ANALYSIS_API_KEY)
  api_key: ""
  # Model name for ollama
  model: ""
  # Simulated processing time of the mock provider
  mock_delay: 3s

server:
  # Listen address for "phishscan serve" (PORT is honored too)
  address: ":5000"
  allowed_origins: ["*"]
  read_timeout: 10s
  write_timeout: 60s
  shutdown_timeout: 10s
  max_body_bytes: 65536

output:
  # text | json | markdown | csv
  default_format: text
  # auto | always | never
  color_mode: auto
  verbose: false
  emoji: true

ui:
  # default | high-contrast | minimal
  theme: default
  alt_screen: true

logging:
  # Log file used while the interactive scanner is open.
  # Empty means <storage.cache_dir>/phishscan.log
  file: ""

storage:
  cache_dir: ~/.cache/phishscan
`
}

// MinimalSampleConfig returns a compact configuration with essential settings
func MinimalSampleConfig() string {
	return `version: "1.0"

analysis:
  provider: flask
  endpoint: http://localhost:5000/api/analyze
  use_mock: false
  timeout: 30s

output:
  default_format: text
`
}

package help

const ColdstartYAML = `# content-analyzer Quick Start

sources:
  youtube: "Video transcript (captions, or audio transcription fallback)"
  github: "Repository README (add --deep for file tree and contents)"

commands:
  process_video: |
    content-analyzer process --urls "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

  process_repo: |
    content-analyzer process --urls "https://github.com/urfave/cli"

  deep_repo_analysis: |
    content-analyzer process --urls "https://github.com/urfave/cli" --deep

  local_model: |
    content-analyzer process --urls "..." --model-type ollama --ollama-model llama2

  publish_note: |
    content-analyzer publish --url "https://github.com/urfave/cli"

  inspect_cache: |
    content-analyzer cache ls
    content-analyzer cache show "https://github.com/urfave/cli"

  history: |
    content-analyzer db history
    content-analyzer db publishes

environment:
  OPENAI_API_KEY: "Hosted model access (chat, transcription, image generation)"
  OPENAI_BASE_URL: "Optional OpenAI-compatible endpoint override"
  OLLAMA_HOST: "Local model endpoint for --model-type ollama"
  YOUTUBE_API_KEY: "Video metadata"
  GITHUB_TOKEN: "Optional, raises the API rate limit"
  CAPACITIES_API_TOKEN: "Note publishing"
  CAPACITIES_SPACE_ID: "Target space for published notes"

cache_system:
  - "One JSON file per URL, keyed by SHA-256 of the raw URL string"
  - "No URL normalization: trailing slashes produce distinct entries"
  - "Same URL = instant cache hit, byte-identical record"
  - "--max-age 24h expires entries; default 0 keeps them forever"
  - "--force-fetch skips the cache and reprocesses"

error_behavior:
  - "Malformed URLs: fail fast before fetching"
  - "Missing README / transcript: not_found, nothing cached"
  - "Model rate limit: fails the URL, retry in about an hour"
  - "Other model sub-call failures: section degrades to a placeholder"
  - "Exit codes: 0=success, 1=partial failure, 2=complete failure"
`

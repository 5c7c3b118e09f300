// Package config loads cohort's TOML configuration.
//
// Load reads ~/.config/cohort/config.toml unless another path is given. A
// missing file is not an error; every field has a default:
//
//	api_bind         = "127.0.0.1:7488"   # list API the browser talks to
//	base_path        = "/home/patient-lists"
//	lists_to_show    = 10                 # initial page size
//	page_sizes       = [10, 20, 25, 50]
//	request_timeout  = "5s"
//	revalidate_every = "30s"
//	log_file         = "~/.local/state/cohort/cohort.log"
//	log_level        = "info"
//	language         = "en"
//	db_path          = "~/.local/share/cohort/cohort.db"  # cohort serve
//	listen           = "127.0.0.1:7488"                    # cohort serve
//
// Values are trimmed and blank values fall back to their default. Any key
// can be overridden with an upper-cased COHORT_ environment variable, for
// example COHORT_API_BIND or COHORT_PAGE_SIZES="10,50". Paths starting with
// a tilde are expanded to the home directory.
package config

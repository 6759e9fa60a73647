package cmd

// VERSION is the sgcount release version, following unikmer/unikmer's
// convention of a single package-level constant bumped per release.
const VERSION = "0.1.0"

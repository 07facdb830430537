//go:build debug

package webtoken

// buildDefaultValidityMinutes gives local debug builds ten day tokens before clamping.
const buildDefaultValidityMinutes = 14400

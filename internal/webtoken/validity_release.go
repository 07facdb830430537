//go:build !debug

package webtoken

// buildDefaultValidityMinutes is zero in release builds, so a missing validity ends up at the minimum.
const buildDefaultValidityMinutes = 0

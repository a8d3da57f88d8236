// Package spatial provides stereo image processors.
//
// Included processors:
//   - MidSideWidener: mid/side stereo image widening and narrowing.
package spatial

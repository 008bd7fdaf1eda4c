// Package analysis summarises sample profiles and recorded curves.
//
//   - [Roughness]: arithmetic and quadratic roughness plus peak-to-valley
//   - [Describe]: mean, spread and range of any channel
//   - [Spectrum]: magnitude spectrum of the mean-removed, zero-padded signal
//   - [Plateaus]: run-length segmentation of held values
//
// # Roughness
//
//	r := analysis.Roughness(profile.Values(scan.Height))
//	fmt.Printf("Ra %.2f Rq %.2f Rz %.2f\n", r.Ra, r.Rq, r.Rz)
package analysis

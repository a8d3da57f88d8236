// Package mastering matches a target recording to a reference.
//
// The pipeline extracts a [features.FeatureSet] from the reference,
// derives [Settings] from those features and the user [Parameters],
// assembles the canonical processing graph
//
//	input -> gain -> [gate] -> low shelf -> mid peak -> high shelf -> presence
//	      -> [saturator] -> [+ exciter] -> compressor -> [+ reverb send]
//	      -> [widener] -> output
//
// and renders it offline. [Master] runs the whole pipeline and encodes the
// result as 16-bit PCM WAV; [Derive] and [BuildGraph] expose the
// intermediate steps.
package mastering

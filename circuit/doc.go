// Package circuit describes brickwork measurement circuits: the
// two-qubit gate structure, the single-qubit rotation layout, and the
// dressing step that fuses rotations into their adjacent two-qubit
// tensors.
//
// Undetermined slots are explicit tagged variants rather than sentinel
// byte values, so a "still random" placeholder can never be mistaken
// for a committed gate choice. Byte codes appear only in cache keys
// and the JSON boundary output (0-2 fixed two-qubit gates, 3 random;
// 1-6 fixed rotations, 0 random), matching the layout conventions of
// the produced measurement settings: structure row 0 is nearest the
// measurement, rotation layer 0 is at the observable boundary.
package circuit

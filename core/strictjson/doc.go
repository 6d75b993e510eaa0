// Package strictjson provides pedantic decoding of JSON documents into typed values.
//
// Decoding is driven by hand-written functions that claim keys through an Object's
// accessors. Any key an object carries that no accessor claimed is "unconsumed".
// Unlike json.Decoder.DisallowUnknownFields, which stops at the first unknown key,
// unconsumed keys are recorded in a Collector keyed by path and decoding continues,
// so one pass reports every offending location in the document.
//
// # Failure categories
//
//   - StructuralError: missing key, null where a value is required, wrong type, or
//     malformed input. Decoding stops immediately.
//   - UnconsumedError: returned alongside the fully decoded value, listing every
//     UnconsumedKeyError (path plus the full key set at that path).
//
// # Usage
//
//	out, err := strictjson.Decode(data, func(o *strictjson.Object) (Thing, error) {
//	    name, err := o.String("name")
//	    if err != nil {
//	        return Thing{}, err
//	    }
//	    o.Finish()
//	    return Thing{Name: name}, nil
//	})
package strictjson

// Package errors provides the coded error type shared by every layer of the
// fallout UI backend.
//
// Errors carry a Code, a user facing message, an optional cause and
// metadata. Codes map onto HTTP statuses for the browser API and onto gRPC
// codes for the UIService.
//
// # Basic Usage
//
//	err := errors.InvalidArgumentf("unknown binding: %s", name)
//	err := errors.Network("search endpoint unreachable").WithMeta("url", u)
//
// Wrapping keeps the original code:
//
//	if err := client.Search(ctx, in); err != nil {
//	    return errors.Wrap(err, "failed to search items")
//	}
//
// # Collaborator Failures
//
// Two codes describe failures of the Fallout REST API rather than of this
// service:
//   - NetworkError: the request never produced a usable 2xx response. The
//     browser shows it as an inline notice.
//   - MalformedResponse: the body did not have the expected shape.
//     Autocomplete treats it as zero results.
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("BaseURL", cfg.BaseURL, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # gRPC Integration
//
//	out, err := h.search.Autocomplete(ctx, input)
//	if err != nil {
//	    return nil, errors.ToGRPCError(err)
//	}
package errors

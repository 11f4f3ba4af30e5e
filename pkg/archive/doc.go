// Package archive lists the members of wheel and sdist archives held in
// memory.
//
// # Overview
//
// The scanner never writes artifacts to disk. Each artifact is fetched
// into a byte slice and inspected here:
//
//   - [ListZip]: member names of a zip container (wheels)
//   - [OpenTar]: member listing of a tar container, optionally gzip
//     compressed (sdists), with on-demand reads through [Tar.ReadMember]
//
// # Errors
//
// Malformed containers fail with code ARCHIVE_FORMAT and unreadable
// members with MEMBER_READ (see [errors.Code]). Callers treat both as
// "no evidence from this artifact".
//
// # Limits
//
// Whole artifacts are buffered in memory. This is fine for the size of
// typical PyPI uploads but is the first thing to revisit for a streaming
// design.
//
// [errors.Code]: github.com/matzehuels/pthscan/pkg/errors.Code
package archive

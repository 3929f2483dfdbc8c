/*Package interval implements set operations over half-open integer
  intervals on a single chromosome axis: union, complement, and difference.
  Every operation returns its result in canonical form: sorted by start,
  pairwise disjoint, and with touching intervals merged.
  The operations are backed by a dense bitmap, so positions must fit below a
  caller-supplied maximum (see DefaultMaxPos).  Coordinates are PosType,
  currently int32 since that's what BAM files are limited to.
*/
package interval

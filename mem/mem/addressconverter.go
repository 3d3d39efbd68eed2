package mem

// AddressConverter is used to convert addresses from one address space to
// another. It is typically used to convert the address the traffic
// generator uses (external) into the address that a particular memory
// controller uses internally.
type AddressConverter interface {
	ConvertExternalToInternal(external uint64) uint64
	ConvertInternalToExternal(internal uint64) uint64
}

// InterleavingConverter defines an address converter that interleaves the
// address space over a number of elements (e.g., memory controllers). Each
// element is only responsible for a `InterleavingSize`-byte chunk of every
// `InterleavingSize * TotalNumOfElements`-byte super-chunk.
type InterleavingConverter struct {
	InterleavingSize    uint64
	TotalNumOfElements  int
	CurrentElementIndex int
	Offset              uint64
}

// ConvertExternalToInternal converts a global address into the address that
// is local to the current element.
func (c InterleavingConverter) ConvertExternalToInternal(
	external uint64,
) uint64 {
	address := external - c.Offset

	chunkIndex := address / c.InterleavingSize
	offsetInChunk := address % c.InterleavingSize
	superChunkIndex := chunkIndex / uint64(c.TotalNumOfElements)

	return superChunkIndex*c.InterleavingSize + offsetInChunk
}

// ConvertInternalToExternal converts a local address back into the global
// address space.
func (c InterleavingConverter) ConvertInternalToExternal(
	internal uint64,
) uint64 {
	superChunkIndex := internal / c.InterleavingSize
	offsetInChunk := internal % c.InterleavingSize

	chunkIndex := superChunkIndex*uint64(c.TotalNumOfElements) +
		uint64(c.CurrentElementIndex)

	return chunkIndex*c.InterleavingSize + offsetInChunk + c.Offset
}

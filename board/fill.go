package board

// Occluded fills smear every bit of gen in one direction for as long as the
// squares in pro continue, using 3 doubling steps instead of 7 single ones.
// East, west and diagonal fills clear the file the shift would wrap into
// from pro first, so rays never cross the board edge.
//
// North is towards row 8 (left shifts), east is towards the h-file.

func southOccl(gen, pro uint64) uint64 {
	gen |= pro & (gen >> 8)
	pro &= pro >> 8
	gen |= pro & (gen >> 16)
	pro &= pro >> 16
	gen |= pro & (gen >> 32)
	return gen
}

func northOccl(gen, pro uint64) uint64 {
	gen |= pro & (gen << 8)
	pro &= pro << 8
	gen |= pro & (gen << 16)
	pro &= pro << 16
	gen |= pro & (gen << 32)
	return gen
}

func eastOccl(gen, pro uint64) uint64 {
	pro &= notAFile
	gen |= pro & (gen << 1)
	pro &= pro << 1
	gen |= pro & (gen << 2)
	pro &= pro << 2
	gen |= pro & (gen << 4)
	return gen
}

func westOccl(gen, pro uint64) uint64 {
	pro &= notHFile
	gen |= pro & (gen >> 1)
	pro &= pro >> 1
	gen |= pro & (gen >> 2)
	pro &= pro >> 2
	gen |= pro & (gen >> 4)
	return gen
}

func northEastOccl(gen, pro uint64) uint64 {
	pro &= notAFile
	gen |= pro & (gen << 9)
	pro &= pro << 9
	gen |= pro & (gen << 18)
	pro &= pro << 18
	gen |= pro & (gen << 36)
	return gen
}

func southEastOccl(gen, pro uint64) uint64 {
	pro &= notAFile
	gen |= pro & (gen >> 7)
	pro &= pro >> 7
	gen |= pro & (gen >> 14)
	pro &= pro >> 14
	gen |= pro & (gen >> 28)
	return gen
}

func northWestOccl(gen, pro uint64) uint64 {
	pro &= notHFile
	gen |= pro & (gen << 7)
	pro &= pro << 7
	gen |= pro & (gen << 14)
	pro &= pro << 14
	gen |= pro & (gen << 28)
	return gen
}

func southWestOccl(gen, pro uint64) uint64 {
	pro &= notHFile
	gen |= pro & (gen >> 9)
	pro &= pro >> 9
	gen |= pro & (gen >> 18)
	pro &= pro >> 18
	gen |= pro & (gen >> 36)
	return gen
}

// One-step shifts. The destination file that a wrapped bit would land on is
// masked out after shifting.

func southOne(gen uint64) uint64 {
	return gen >> 8
}

func northOne(gen uint64) uint64 {
	return gen << 8
}

func eastOne(gen uint64) uint64 {
	return (gen << 1) & notAFile
}

func westOne(gen uint64) uint64 {
	return (gen >> 1) & notHFile
}

func northEastOne(gen uint64) uint64 {
	return (gen << 9) & notAFile
}

func southEastOne(gen uint64) uint64 {
	return (gen >> 7) & notAFile
}

func northWestOne(gen uint64) uint64 {
	return (gen << 7) & notHFile
}

func southWestOne(gen uint64) uint64 {
	return (gen >> 9) & notHFile
}

// neighbours is the union of the eight one-step shifts of gen.
func neighbours(gen uint64) uint64 {
	return northOne(gen) | southOne(gen) | eastOne(gen) | westOne(gen) |
		northEastOne(gen) | northWestOne(gen) | southEastOne(gen) | southWestOne(gen)
}

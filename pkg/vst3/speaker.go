package vst3

import (
	"math/bits"
	"strconv"
	"strings"
)

// SpeakerArrangement is a bitset of speakers
type SpeakerArrangement uint64

// Speaker bits
const (
	SpeakerL   SpeakerArrangement = 1 << 0
	SpeakerR   SpeakerArrangement = 1 << 1
	SpeakerC   SpeakerArrangement = 1 << 2
	SpeakerLfe SpeakerArrangement = 1 << 3
	SpeakerLs  SpeakerArrangement = 1 << 4
	SpeakerRs  SpeakerArrangement = 1 << 5
	SpeakerLc  SpeakerArrangement = 1 << 6
	SpeakerRc  SpeakerArrangement = 1 << 7
	SpeakerCs  SpeakerArrangement = 1 << 8
	SpeakerSl  SpeakerArrangement = 1 << 9
	SpeakerSr  SpeakerArrangement = 1 << 10
	SpeakerM   SpeakerArrangement = 1 << 19
)

// Common arrangements
const (
	ArrEmpty          SpeakerArrangement = 0
	ArrMono                              = SpeakerM
	ArrStereo                            = SpeakerL | SpeakerR
	ArrStereoSurround                    = SpeakerLs | SpeakerRs
	ArrStereoCenter                      = SpeakerLc | SpeakerRc
	ArrStereoSide                        = SpeakerSl | SpeakerSr
	ArrStereoCLfe                        = SpeakerC | SpeakerLfe
	Arr30Cine                            = SpeakerL | SpeakerR | SpeakerC
	Arr30Music                           = SpeakerL | SpeakerR | SpeakerCs
	Arr31Cine                            = Arr30Cine | SpeakerLfe
	Arr40Cine                            = SpeakerL | SpeakerR | SpeakerC | SpeakerCs
	Arr40Music                           = SpeakerL | SpeakerR | SpeakerLs | SpeakerRs
	Arr41Music                           = Arr40Music | SpeakerLfe
	Arr50                                = SpeakerL | SpeakerR | SpeakerC | SpeakerLs | SpeakerRs
	Arr51                                = Arr50 | SpeakerLfe
	Arr70Music                           = Arr50 | SpeakerSl | SpeakerSr
	Arr71Music                           = Arr70Music | SpeakerLfe
)

var arrangementNames = []struct {
	name string
	arr  SpeakerArrangement
}{
	{"Mono", ArrMono},
	{"Stereo", ArrStereo},
	{"Stereo (Ls Rs)", ArrStereoSurround},
	{"Stereo (Lc Rc)", ArrStereoCenter},
	{"Stereo (Sl Sr)", ArrStereoSide},
	{"Stereo (C LFE)", ArrStereoCLfe},
	{"LRC", Arr30Cine},
	{"LRS", Arr30Music},
	{"LRC+LFE", Arr31Cine},
	{"LRCS", Arr40Cine},
	{"Quadro", Arr40Music},
	{"Quadro+LFE", Arr41Music},
	{"5.0", Arr50},
	{"5.1", Arr51},
	{"7.0", Arr70Music},
	{"7.1", Arr71Music},
}

// SpeakerArrangementFromString maps an arrangement name such as "Stereo" or
// "5.1" to its bitset. Matching ignores case and surrounding blanks.
func SpeakerArrangementFromString(s string) (SpeakerArrangement, bool) {
	s = strings.TrimSpace(s)
	for _, n := range arrangementNames {
		if strings.EqualFold(n.name, s) {
			return n.arr, true
		}
	}
	return ArrEmpty, false
}

// ChannelCount returns the number of speakers in the arrangement
func (a SpeakerArrangement) ChannelCount() int {
	return bits.OnesCount64(uint64(a))
}

// String returns the arrangement name, or the channel count when the
// arrangement has no well-known name.
func (a SpeakerArrangement) String() string {
	for _, n := range arrangementNames {
		if n.arr == a {
			return n.name
		}
	}
	if a == ArrEmpty {
		return ""
	}
	return strconv.Itoa(a.ChannelCount()) + "ch"
}

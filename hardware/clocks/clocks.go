package clocks

const Mhz = 1000000

// the master clock of the DMG is also the pixel (or "dot") clock. every other
// clock in the console is derived from it
const DMG = 4.194304 * Mhz

// the CPU completes one machine cycle every four dots. the dot cost of an
// instruction is always a multiple of this value
const DotsPerMachineCycle = 4

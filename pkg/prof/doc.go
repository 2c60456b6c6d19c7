// Package prof wraps [runtime/pprof] for profiling a compiler run.
//
// CPU profiling streams samples to a file between explicit start and stop:
//
//	if err := prof.StartCPU("cpu.prof"); err != nil {
//	    return err
//	}
//	defer prof.StopCPU()
//
// Snapshot profiles are written once, typically at exit:
//
//	prof.Write(prof.ProfileHeap, "heap.prof")
//
// [ProfileCPU] cannot be used with [Write] or [WriteTo].
package prof

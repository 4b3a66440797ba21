//go:build windows

package windows

import (
	"fmt"
	"unsafe"

	winsys "golang.org/x/sys/windows"

	"github.com/Norgate-AV/autoprim/internal/process"
)

// ToolhelpAvailable reports whether kernel32 exports the Toolhelp32 functions
func ToolhelpAvailable() bool {
	return ProcCreateToolhelp32Snapshot.Find() == nil &&
		ProcProcess32First.Find() == nil &&
		ProcProcess32Next.Find() == nil
}

// ToolhelpEnumerator walks a Toolhelp32 process snapshot
type ToolhelpEnumerator struct{}

func (ToolhelpEnumerator) Name() string { return "toolhelp" }

func (ToolhelpEnumerator) Walk(yield func(process.Record) bool) error {
	snapshot, _, err := ProcCreateToolhelp32Snapshot.Call(TH32CS_SNAPPROCESS, 0)
	if snapshot == INVALID_HANDLE_VALUE {
		return fmt.Errorf("failed to snapshot processes: %w", err)
	}

	defer func() {
		_, _, _ = ProcCloseHandle.Call(snapshot)
	}()

	var entry PROCESSENTRY32
	entry.DwSize = uint32(unsafe.Sizeof(entry))

	ret, _, err := ProcProcess32First.Call(snapshot, uintptr(unsafe.Pointer(&entry)))
	if ret == 0 {
		return fmt.Errorf("failed to read first process: %w", err)
	}

	for ret != 0 {
		rec := process.Record{
			PID:  entry.Th32ProcessID,
			Path: winsys.UTF16ToString(entry.SzExeFile[:]),
		}

		if !yield(rec) {
			return nil
		}

		ret, _, _ = ProcProcess32Next.Call(snapshot, uintptr(unsafe.Pointer(&entry)))
	}

	return nil
}

// PSAPIEnumerator lists processes with EnumProcesses and names them with
// GetModuleBaseName. Processes that cannot be opened are reported with an
// empty name so PID lookups still work.
type PSAPIEnumerator struct{}

func (PSAPIEnumerator) Name() string { return "psapi" }

func (PSAPIEnumerator) Walk(yield func(process.Record) bool) error {
	pids, err := enumProcessIDs()
	if err != nil {
		return err
	}

	for _, pid := range pids {
		if !yield(process.Record{PID: pid, Path: moduleBaseName(pid)}) {
			return nil
		}
	}

	return nil
}

// enumProcessIDs grows the buffer until EnumProcesses leaves room to spare
func enumProcessIDs() ([]uint32, error) {
	size := 1024

	for {
		pids := make([]uint32, size)
		var written uint32

		if err := winsys.EnumProcesses(pids, &written); err != nil {
			return nil, fmt.Errorf("failed to enumerate processes: %w", err)
		}

		n := int(written) / int(unsafe.Sizeof(pids[0]))
		if n < size {
			return pids[:n], nil
		}

		size *= 2
	}
}

func moduleBaseName(pid uint32) string {
	h, err := winsys.OpenProcess(winsys.PROCESS_QUERY_INFORMATION|winsys.PROCESS_VM_READ, false, pid)
	if err != nil {
		return ""
	}
	defer winsys.CloseHandle(h)

	var buf [MAX_PATH]uint16
	if err := winsys.GetModuleBaseName(h, 0, &buf[0], uint32(len(buf))); err != nil {
		return ""
	}

	return winsys.UTF16ToString(buf[:])
}

package sim

import (
	"fmt"

	"github.com/maseology/mmio"

	chs "github.com/leixiaohui-1974/CHS-sub001"
)

// Monitor records a per-step series at a named element: node head when
// the name resolves to a node, discharge when it resolves to a reach or
// weir.
type Monitor struct {
	Name string
	V    []float64
	grab func() float64
}

// NewMonitor binds a monitor to an element of net, preallocating nt
// values.
func NewMonitor(net *chs.Network, name string, nt int) (*Monitor, error) {
	m := &Monitor{Name: name, V: make([]float64, 0, nt)}
	if i, ok := net.Nxr[name]; ok {
		m.grab = func() float64 { return net.Nodes[i].H }
		return m, nil
	}
	if i, ok := net.Rxr[name]; ok {
		m.grab = func() float64 { return net.Reaches[i].Q }
		return m, nil
	}
	if i, ok := net.Wxr[name]; ok {
		m.grab = func() float64 { return net.Weirs[i].Q }
		return m, nil
	}
	return nil, fmt.Errorf("monitor %q: no such element", name)
}

func (m *Monitor) push() { m.V = append(m.V, m.grab()) }

// Write flushes the recorded series to <prfx><name>.cms.
func (m *Monitor) Write(prfx string) {
	mmio.WriteFloats(fmt.Sprintf("%s%s.cms", prfx, m.Name), m.V)
}

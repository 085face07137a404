package sim

import "testing"

func TestIODevice_EnqueueDoesNotActivateImmediately(t *testing.T) {
	d := &IODevice{}
	d.Enqueue("P1", 3)
	if d.ActivePID() != "" {
		t.Errorf("active pid = %q, want empty until the next Tick", d.ActivePID())
	}
	if d.Busy() {
		t.Errorf("device should not be busy before its first Tick")
	}
	if got := d.WaitingPIDs(); len(got) != 1 || got[0] != "P1" {
		t.Errorf("waiting = %v, want [P1]", got)
	}
}

func TestIODevice_SecondJobWaits(t *testing.T) {
	d := &IODevice{}
	d.Enqueue("P1", 3)
	d.Enqueue("P2", 2)
	if got := d.WaitingPIDs(); len(got) != 2 || got[0] != "P1" || got[1] != "P2" {
		t.Errorf("waiting = %v, want [P1 P2]", got)
	}
}

func TestIODevice_TickReleasesAndPromotes(t *testing.T) {
	d := &IODevice{}
	d.Enqueue("P1", 2)
	d.Enqueue("P2", 1)

	served, pid, released := d.Tick()
	if served != "P1" || released || pid != "" {
		t.Fatalf("first tick should serve P1 without releasing, got (%q, %q, %v)", served, pid, released)
	}
	served, pid, released = d.Tick()
	if served != "P1" || !released || pid != "P1" {
		t.Fatalf("second tick should serve and release P1, got (%q, %q, %v)", served, pid, released)
	}
	if d.ActivePID() != "P2" {
		t.Errorf("P2 should have been promoted, active = %q", d.ActivePID())
	}
	served, pid, released = d.Tick()
	if served != "P2" || !released || pid != "P2" {
		t.Fatalf("third tick should serve and release P2, got (%q, %q, %v)", served, pid, released)
	}
}

func TestIODevice_TickOnIdleDevice(t *testing.T) {
	d := &IODevice{}
	served, pid, released := d.Tick()
	if served != "" || released || pid != "" {
		t.Errorf("idle device should report nothing served, got (%q, %q, %v)", served, pid, released)
	}
}

package shell

import (
	"context"
	"fmt"

	"github.com/hadoopsh/hadoopsh/client"
	"github.com/hadoopsh/hadoopsh/pkg/config"
)

func NewMapR(m *client.MapR, opts Options) *Shell {
	return New(config.NameMapR, "MapR REST shell", m.Endpoint, []Command{
		{Name: "list", Params: "hosts|services|...", Help: "list hosts, services [host], volumes, disks <host>", Run: func(ctx context.Context, args Args) (interface{}, error) {
			return maprList(ctx, m, args)
		}},
	}, opts)
}

func maprList(ctx context.Context, m *client.MapR, args Args) (interface{}, error) {
	switch args.Arg(0) {
	case "hosts":
		hosts, err := m.Hosts(ctx)
		if err != nil {
			return nil, err
		}
		t := &Table{Header: []string{"HOST", "IP", "SERVICES"}}
		for _, h := range hosts {
			t.Append(h.Hostname, h.IP, h.ConfiguredService)
		}
		return t, nil
	case "services":
		services, err := m.Services(ctx, args.Arg(1))
		if err != nil {
			return nil, err
		}
		t := &Table{Header: []string{"NAME", "DISPLAYNAME", "STATE", "LOGPATH"}}
		for _, s := range services {
			t.Append(s.Name, s.DisplayName, client.MapRState(s.State), s.LogPath)
		}
		return t, nil
	case "volumes":
		volumes, err := m.Volumes(ctx)
		if err != nil {
			return nil, err
		}
		t := &Table{Header: []string{"VOLUME", "MOUNTDIR", "RACKPATH"}}
		for _, v := range volumes {
			t.Append(v.VolumeName, v.MountDir, v.RackPath)
		}
		return t, nil
	case "disks":
		if args.Len() != 2 {
			return "Incorrect parameters", nil
		}
		disks, err := m.Disks(ctx, args.Arg(1))
		if err != nil {
			return nil, err
		}
		t := &Table{Header: []string{"DISK", "SIZE", "FSTYPE", "STATUS"}}
		for _, d := range disks {
			t.Append(d.DiskName, fmt.Sprint(d.TotalSpace), d.FSType, fmt.Sprint(d.Status))
		}
		return t, nil
	}
	return "Incorrect parameters", nil
}

package utils

import (
	"net"
	"strconv"
	"strings"

	"github.com/colinmarc/hdfs/v2/hadoopconf"
	"github.com/hadoopsh/hadoopsh/pkg/config"
)

const namenodeHTTPAddress = "dfs.namenode.http-address"

// ApplyHadoopConf takes the WebHDFS host and port from
// dfs.namenode.http-address when they are still the built-in defaults.
func ApplyHadoopConf(svc config.Service, conf hadoopconf.HadoopConf) config.Service {
	def := config.DefaultServices[config.NameHDFS]
	if svc.Host != def.Host || svc.Port != def.Port {
		return svc
	}

	addr := conf[namenodeHTTPAddress]
	if addr == "" {
		// HA clusters name the address per namenode
		for k, v := range conf {
			if strings.HasPrefix(k, namenodeHTTPAddress+".") {
				addr = v
				break
			}
		}
	}
	if addr == "" {
		return svc
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return svc
	}
	if p, err := strconv.Atoi(port); err == nil {
		if host != "" && host != "0.0.0.0" {
			svc.Host = host
		}
		svc.Port = p
	}
	return svc
}

// HDFSFromEnvironment reads HADOOP_CONF_DIR (or HADOOP_HOME/conf) and applies
// it to svc. Missing configuration leaves svc unchanged.
func HDFSFromEnvironment(svc config.Service) config.Service {
	conf, err := hadoopconf.LoadFromEnvironment()
	if err != nil || len(conf) == 0 {
		return svc
	}
	return ApplyHadoopConf(svc, conf)
}
